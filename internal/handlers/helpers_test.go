package handlers_test

import (
	"bytes"
	"encoding/json"
	"market/internal/cache"
	"market/internal/config"
	"market/internal/events"
	"market/internal/handlers"
	"market/internal/metrics"
	"market/internal/middleware"
	"market/internal/repo"
	"market/internal/service"
	"market/internal/storage"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type testAPI struct {
	router http.Handler
	cfg    *config.Config
	svc    handlers.Services
}

// разобранный конверт ответа
type envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorBody struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type pageBody[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// newTestAPI поднимает роутер поверх настоящих сервисов и in-memory SQLite.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB("sqlite", "file:h_"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{
		AuthSecret:   testSecret,
		TokenTTL:     time.Hour,
		MaxUploadMB:  1,
		ImageDir:     t.TempDir(),
		ImageBaseURL: "/static",
	}
	log := zap.NewNop().Sugar()
	images, err := storage.NewLocalStorage(cfg.ImageDir, cfg.ImageBaseURL, log)
	require.NoError(t, err)

	m := metrics.New()
	pub := events.Noop{}
	tx := repo.NewTxManager(db)
	users := repo.NewUserRepository(db)
	items := repo.NewItemRepository(db)
	cascade := repo.NewCascade(db)

	svc := handlers.Services{
		Users:        service.NewUserService(users, cascade, tx, cache.Noop{}, service.TokenConfig{Secret: cfg.AuthSecret, TTL: cfg.TokenTTL}, log),
		Items:        service.NewItemService(items, users, cascade, tx, images, cache.Noop{}, pub, m, log),
		Comments:     service.NewCommentService(repo.NewCommentRepository(db), items, users, tx, log),
		Negotiations: service.NewNegotiationService(repo.NewNegotiationRepository(db), items, users, tx, pub, m, log),
		Reviews:      service.NewReviewService(repo.NewReviewRepository(db), items, users, tx, pub, m, log),
		Chats:        service.NewChatService(repo.NewChatRepository(db), items, users, tx, pub, m, log),
	}
	h := handlers.NewHandler(svc, m, log, cfg)
	return &testAPI{router: h.Router, cfg: cfg, svc: svc}
}

// do выполняет запрос; body сериализуется в JSON, с пустым token запрос анонимный.
func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// join регистрирует пользователя в Сеуле и возвращает его id и токен.
func (a *testAPI) join(t *testing.T, username string) (int64, string) {
	t.Helper()
	return a.joinAt(t, username, 37.5665, 126.9780)
}

func (a *testAPI) joinAt(t *testing.T, username string, lat, lng float64) (int64, string) {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/join", map[string]any{
		"username":   username,
		"password":   "pw",
		"address":    "addr",
		"coordinate": map[string]float64{"lat": lat, "lng": lng},
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var u handlers.UserResponse
	decodeData(t, rr, &u)

	tok, err := middleware.IssueToken(u.ID, testSecret, time.Hour)
	require.NoError(t, err)
	return u.ID, tok
}

// createItem создаёт объявление и возвращает его id.
func (a *testAPI) createItem(t *testing.T, token, title string) int64 {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/items", map[string]any{
		"title":          title,
		"description":    "desc",
		"minPriceWanted": 10000,
	}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var it handlers.ItemResponse
	decodeData(t, rr, &it)
	return it.ID
}

func (a *testAPI) setStatus(t *testing.T, token string, itemID int64, status string) {
	t.Helper()
	rr := a.do(t, http.MethodPut, itemPath(itemID, "status"), map[string]string{"status": status}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	env := decodeEnvelope(t, rr)
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e), rr.Body.String())
	return e
}

func itemPath(itemID int64, kind string) string {
	switch kind {
	case "status":
		return "/items/status/" + itoa(itemID)
	case "":
		return "/items/" + itoa(itemID)
	default:
		return "/items/" + itoa(itemID) + "/" + kind
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func bytesReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}

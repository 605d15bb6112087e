package service

import (
	"context"
	"fmt"
	"market/internal/apperr"
	"market/internal/model"
	"market/internal/repo"

	"go.uber.org/zap"
)

// CommentService — комментарии к объявлениям и ответы продавца.
type CommentService struct {
	comments repo.CommentRepository
	items    repo.ItemRepository
	users    repo.UserRepository
	tx       repo.TxManager
	logger   *zap.SugaredLogger
}

func NewCommentService(comments repo.CommentRepository, items repo.ItemRepository, users repo.UserRepository, tx repo.TxManager, logger *zap.SugaredLogger) *CommentService {
	return &CommentService{comments: comments, items: items, users: users, tx: tx, logger: logger}
}

func (s *CommentService) Create(ctx context.Context, itemID int64, content string, userID int64) (*model.Comment, error) {
	var c *model.Comment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.items.GetByID(ctx, itemID); err != nil {
			return notFound(err, apperr.ErrNotFoundItem, "item")
		}
		u, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return notFound(err, apperr.ErrNotFoundUser, "user")
		}
		c = &model.Comment{ItemID: itemID, UserID: u.ID, Content: content}
		if err := s.comments.Create(ctx, c); err != nil {
			return fmt.Errorf("save comment: %w", err)
		}
		c.User = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ReadCommentList возвращает комментарии объявления, старые первыми.
func (s *CommentService) ReadCommentList(ctx context.Context, itemID int64, page, limit int) (Page[model.Comment], error) {
	list, total, err := s.comments.ListByItem(ctx, itemID, page, limit)
	if err != nil {
		return Page[model.Comment]{}, fmt.Errorf("list comments: %w", err)
	}
	return NewPage(list, page, limit, total), nil
}

// UpdateComment меняет текст комментария. Только автор.
func (s *CommentService) UpdateComment(ctx context.Context, itemID, commentID int64, content string, userID int64) (*model.Comment, error) {
	var c *model.Comment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var (
			u   *model.User
			err error
		)
		_, c, u, err = s.load(ctx, itemID, commentID, userID)
		if err != nil {
			return err
		}
		if c.UserID != u.ID {
			return apperr.ErrInvalidWriter
		}
		c.Content = content
		return s.comments.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteComment удаляет комментарий. Только автор.
func (s *CommentService) DeleteComment(ctx context.Context, itemID, commentID, userID int64) (*model.Comment, error) {
	var c *model.Comment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var (
			u   *model.User
			err error
		)
		_, c, u, err = s.load(ctx, itemID, commentID, userID)
		if err != nil {
			return err
		}
		if c.UserID != u.ID {
			return apperr.ErrInvalidWriter
		}
		return s.comments.Delete(ctx, c.ID)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCommentReply записывает ответ на комментарий. Только владелец объявления.
func (s *CommentService) UpdateCommentReply(ctx context.Context, itemID, commentID int64, reply string, userID int64) (*model.Comment, error) {
	var c *model.Comment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var (
			it  *model.Item
			u   *model.User
			err error
		)
		it, c, u, err = s.load(ctx, itemID, commentID, userID)
		if err != nil {
			return err
		}
		if it.UserID != u.ID {
			return apperr.ErrInvalidWriter
		}
		c.Reply = reply
		return s.comments.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// load: объявление, комментарий (принадлежащий объявлению), пользователь.
func (s *CommentService) load(ctx context.Context, itemID, commentID, userID int64) (*model.Item, *model.Comment, *model.User, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, nil, notFound(err, apperr.ErrNotFoundItem, "item")
	}
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, nil, nil, notFound(err, apperr.ErrNotFoundComment, "comment")
	}
	if c.ItemID != it.ID {
		return nil, nil, nil, apperr.ErrNotMatchItemAndComment
	}
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, notFound(err, apperr.ErrNotFoundUser, "user")
	}
	return it, c, u, nil
}

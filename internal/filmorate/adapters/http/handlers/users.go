package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/pkg/logger"
)

// UserHandler обрабатывает запросы /users.
type UserHandler struct {
	users api.UserUseCase
}

// NewUserHandler создает новый экземпляр обработчика пользователей.
func NewUserHandler(users api.UserUseCase) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	return h.save(c, h.users.CreateUser)
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	return h.save(c, h.users.UpdateUser)
}

func (h *UserHandler) save(c fiber.Ctx, op func(context.Context, *entities.User) (*entities.User, error)) error {
	ctx := middleware.RequestContext(c)

	var req dto.UserRequest
	if err := c.Bind().Body(&req); err != nil {
		logger.Log(ctx).Debug(ctx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ErrMsgInvalidRequestBody, nil)
	}

	user, err := req.ToEntity()
	if err != nil {
		return badRequest(ErrMsgInvalidRequestBody, err)
	}

	saved, err := op(ctx, user)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromUser(saved))
}

func (h *UserHandler) GetAll(c fiber.Ctx) error {
	users, err := h.users.GetAllUsers(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromUsers(users))
}

func (h *UserHandler) GetByID(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.GetUserByID(middleware.RequestContext(c), id)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromUser(user))
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.DeleteUser(middleware.RequestContext(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) AddFriend(c fiber.Ctx) error {
	id, friendID, err := pairPath(c, "friendId")
	if err != nil {
		return err
	}

	if err := h.users.AddFriends(middleware.RequestContext(c), id, friendID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *UserHandler) DeleteFriend(c fiber.Ctx) error {
	id, friendID, err := pairPath(c, "friendId")
	if err != nil {
		return err
	}

	if err := h.users.DeleteFriends(middleware.RequestContext(c), id, friendID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *UserHandler) Friends(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	friends, err := h.users.GetFriends(middleware.RequestContext(c), id)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromUsers(friends))
}

func (h *UserHandler) CommonFriends(c fiber.Ctx) error {
	id, otherID, err := pairPath(c, "otherId")
	if err != nil {
		return err
	}

	mutual, err := h.users.GetMutualFriends(middleware.RequestContext(c), id, otherID)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromUsers(mutual))
}

func pairPath(c fiber.Ctx, second string) (int64, int64, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	otherID, err := pathID(c, second)
	if err != nil {
		return 0, 0, err
	}
	return id, otherID, nil
}

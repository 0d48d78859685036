package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/InternHub-Service/internal/domain"
	userRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/user"
)

// Resolver сверяет Actor из токена с БД
// Роль и отрасли администратора читаются на каждый запрос,
// поэтому удаление или понижение админа действует до истечения токена
type Resolver struct {
	userRepo UserRepository
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(userRepo UserRepository) *Resolver {
	return &Resolver{userRepo: userRepo}
}

// Resolve возвращает Actor с актуальной ролью и IndustryIDs для industry_admin
// Студенческие токены возвращаются без обращения к БД
func (r *Resolver) Resolve(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	if !actor.Role.IsAdmin() {
		return actor, nil
	}

	user, err := r.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return actor, ErrUnknownUser
		}
		return actor, fmt.Errorf("%w: Resolve - failed to load user id=%d: %w", ErrInternal, actor.UserID, err)
	}

	if !user.Role.IsAdmin() {
		return actor, ErrRoleRevoked
	}

	// Роль берется из БД, а не из токена
	actor.Role = user.Role
	actor.IndustryIDs = nil
	if user.Role == domain.RoleIndustryAdmin {
		actor.IndustryIDs = user.IndustryIDs
		if actor.IndustryIDs == nil {
			actor.IndustryIDs = []int64{}
		}
	}

	return actor, nil
}

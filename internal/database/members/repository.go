// Package members provides database operations for the members table.
package members

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/librarydesk/internal/database"
	"github.com/mrlokans/librarydesk/internal/entities"
)

// Repository provides database operations for members.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListMembers returns every member ordered by identity.
func (r *Repository) ListMembers(ctx context.Context) ([]entities.Member, error) {
	members := []entities.Member{}
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Order("id ASC").Find(&members).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// GetMemberByID returns gorm.ErrRecordNotFound for an unknown ID.
func (r *Repository) GetMemberByID(ctx context.Context, id uint) (*entities.Member, error) {
	var member entities.Member
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.First(&member, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CreateMember inserts the member and sets its ID.
func (r *Repository) CreateMember(ctx context.Context, member *entities.Member) error {
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Create(member).Error
	})
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// UpdateMember replaces name, email and phone of the member with member.ID.
func (r *Repository) UpdateMember(ctx context.Context, member *entities.Member) (int64, error) {
	var affected int64
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		result := conn.Exec(
			`UPDATE members SET name = @name, email = @email, phone = @phone WHERE id = @id`,
			map[string]any{
				"id":    member.ID,
				"name":  member.Name,
				"email": member.Email,
				"phone": member.Phone,
			},
		)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("update member %d: %w", member.ID, err)
	}
	return affected, nil
}

// DeleteMember removes the member. Deleting a missing ID affects zero rows.
func (r *Repository) DeleteMember(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		result := conn.Delete(&entities.Member{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete member %d: %w", id, err)
	}
	return affected, nil
}

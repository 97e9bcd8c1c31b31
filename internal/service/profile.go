package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

// DecodeProfile turns a loosely shaped request into exactly one typed record.
func DecodeProfile(userID string, req domain.ProfileRequest) (domain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Profile{}, invalid("user_id is required")
	}
	if !req.UserType.Valid() {
		return domain.Profile{}, invalid("user_type must be %q or %q", domain.UserTypeCustomer, domain.UserTypeDesigner)
	}

	var missing []string
	if req.Height == nil {
		missing = append(missing, "height")
	}
	if req.Weight == nil {
		missing = append(missing, "weight")
	}
	if req.Age == nil {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		return domain.Profile{}, invalid("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if *req.Height <= 0 || *req.Weight <= 0 || *req.Age <= 0 {
		return domain.Profile{}, invalid("height, weight and age must be positive")
	}

	if req.UserType == domain.UserTypeDesigner {
		return domain.Profile{Designer: &domain.DesignerProfile{
			UserID:         userID,
			Height:         *req.Height,
			Weight:         *req.Weight,
			Age:            *req.Age,
			Specialization: strings.TrimSpace(req.Specialization),
			Experience:     strings.TrimSpace(req.Experience),
			Location:       strings.TrimSpace(req.Location),
		}}, nil
	}
	return domain.Profile{Customer: &domain.CustomerProfile{
		UserID:   userID,
		Height:   *req.Height,
		Weight:   *req.Weight,
		Age:      *req.Age,
		Chest:    req.Chest,
		Waist:    req.Waist,
		Hip:      req.Hip,
		Inseam:   req.Inseam,
		ShoeSize: req.ShoeSize,
	}}, nil
}

// SaveProfile validates and upserts a profile, returning the stored record
// and the session it establishes.
func (s *Service) SaveProfile(ctx context.Context, userID string, req domain.ProfileRequest) (*domain.Profile, *domain.Session, error) {
	profile, err := DecodeProfile(userID, req)
	if err != nil {
		return nil, nil, err
	}

	var saved domain.Profile
	switch {
	case profile.Designer != nil:
		profile.Designer.UpdatedAt = s.now()
		saved.Designer, err = s.store.UpsertDesignerProfile(ctx, profile.Designer)
	default:
		profile.Customer.UpdatedAt = s.now()
		saved.Customer, err = s.store.UpsertCustomerProfile(ctx, profile.Customer)
	}
	if err != nil {
		s.logger.Error("profile save failed", zap.String("user_id", userID), zap.Error(err))
		return nil, nil, err
	}

	session := &domain.Session{UserID: strings.TrimSpace(userID), UserType: saved.UserType()}
	s.logger.Info("profile saved", zap.String("user_id", session.UserID), zap.String("user_type", string(session.UserType)))
	return &saved, session, nil
}

// GetProfile returns the profile of userID for the given user type, or nil.
func (s *Service) GetProfile(ctx context.Context, userID string, userType domain.UserType) (*domain.Profile, error) {
	switch userType {
	case domain.UserTypeDesigner:
		p, err := s.store.GetDesignerProfile(ctx, userID)
		if err != nil || p == nil {
			return nil, err
		}
		return &domain.Profile{Designer: p}, nil
	case domain.UserTypeCustomer:
		p, err := s.store.GetCustomerProfile(ctx, userID)
		if err != nil || p == nil {
			return nil, err
		}
		return &domain.Profile{Customer: p}, nil
	}
	return nil, invalid("user_type must be %q or %q", domain.UserTypeCustomer, domain.UserTypeDesigner)
}

// SearchDesigners lists designer directory entries.
func (s *Service) SearchDesigners(ctx context.Context, filter domain.DesignerFilter) ([]domain.DesignerProfile, error) {
	designers, err := s.store.SearchDesigners(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search designers: %w", err)
	}
	if designers == nil {
		designers = []domain.DesignerProfile{}
	}
	return designers, nil
}

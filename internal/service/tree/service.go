package tree

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"imalink-backend/internal/config"
	"imalink-backend/internal/domain"
	"imalink-backend/internal/repository"
	"imalink-backend/internal/service/hierarchy"
)

type Service interface {
	// GetTree builds the nested event tree for the user, or the subtree
	// under rootID when given. Every node carries its direct photo count.
	GetTree(ctx context.Context, userID uuid.UUID, rootID *uuid.UUID) (*domain.EventTree, error)
	// ListByParent returns the children of parentID (roots when nil)
	// with direct photo counts, in display order.
	ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) ([]domain.EventWithCount, error)
	InvalidateCache(ctx context.Context, userID uuid.UUID)
}

type service struct {
	eventRepo repository.EventRepository
	assocRepo repository.AssociationRepository
	redis     *redis.Client
	cfg       *config.Config
}

func NewService(eventRepo repository.EventRepository, assocRepo repository.AssociationRepository, redis *redis.Client, cfg *config.Config) Service {
	return &service{
		eventRepo: eventRepo,
		assocRepo: assocRepo,
		redis:     redis,
		cfg:       cfg,
	}
}

func treeCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("events:tree:%s", userID)
}

func (s *service) GetTree(ctx context.Context, userID uuid.UUID, rootID *uuid.UUID) (*domain.EventTree, error) {
	if rootID == nil {
		return s.getFullTree(ctx, userID)
	}
	return s.getSubtree(ctx, userID, *rootID)
}

func (s *service) getFullTree(ctx context.Context, userID uuid.UUID) (*domain.EventTree, error) {
	cacheKey := treeCacheKey(userID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var tree domain.EventTree
			if json.Unmarshal([]byte(cached), &tree) == nil {
				return &tree, nil
			}
		}
	}

	events, err := s.eventRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	tree, err := s.assemble(ctx, events)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if treeJSON, err := json.Marshal(tree); err == nil {
			_ = s.redis.Set(ctx, cacheKey, treeJSON, s.cfg.TreeCacheTTL).Err()
		}
	}

	return tree, nil
}

func (s *service) getSubtree(ctx context.Context, userID, rootID uuid.UUID) (*domain.EventTree, error) {
	root, err := s.eventRepo.GetByID(ctx, userID, rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrEventNotFound
	}

	descendants, err := hierarchy.Descendants(ctx, s.eventRepo, userID, rootID)
	if err != nil {
		return nil, err
	}

	events := append([]domain.Event{*root}, descendants...)
	return s.assemble(ctx, events)
}

// assemble nests a flat event set. The input is expected in display
// order (sort_order, name, id) per parent, which both ListAll and the
// descendant walk provide, so children arrays inherit that order.
func (s *service) assemble(ctx context.Context, events []domain.Event) (*domain.EventTree, error) {
	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	counts, err := s.assocRepo.CountByEvents(ctx, ids)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uuid.UUID]*domain.EventTreeNode, len(events))
	for _, e := range events {
		nodes[e.ID] = &domain.EventTreeNode{
			Event:      e,
			PhotoCount: counts[e.ID],
			Children:   []*domain.EventTreeNode{},
		}
	}

	roots := []*domain.EventTreeNode{}
	for _, e := range events {
		node := nodes[e.ID]
		if e.ParentEventID != nil {
			if parent, ok := nodes[*e.ParentEventID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return &domain.EventTree{
		Events:      roots,
		TotalEvents: len(events),
	}, nil
}

func (s *service) ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) ([]domain.EventWithCount, error) {
	if parentID != nil {
		parent, err := s.eventRepo.GetByID(ctx, userID, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrEventNotFound
		}
	}

	events, err := s.eventRepo.ListByParent(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	counts, err := s.assocRepo.CountByEvents(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]domain.EventWithCount, len(events))
	for i, e := range events {
		result[i] = domain.EventWithCount{Event: e, PhotoCount: counts[e.ID]}
	}
	return result, nil
}

func (s *service) InvalidateCache(ctx context.Context, userID uuid.UUID) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, treeCacheKey(userID)).Err()
	}
}

package hierarchy

import (
	"context"
	"log"

	"github.com/google/uuid"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/repository"
)

// WouldCreateCycle reports whether re-parenting eventID under
// proposedParentID would make the event its own ancestor. It walks the
// ancestor chain of the candidate parent, so the cost is bounded by tree
// depth. A nil parent (move to root) never creates a cycle.
func WouldCreateCycle(ctx context.Context, events repository.EventRepository, userID, eventID uuid.UUID, proposedParentID *uuid.UUID) (bool, error) {
	if proposedParentID == nil {
		return false, nil
	}

	visited := make(map[uuid.UUID]bool)
	current := *proposedParentID

	for {
		if current == eventID {
			return true, nil
		}
		if visited[current] {
			log.Printf("hierarchy corruption: ancestor walk from %s revisits %s (user %s)", *proposedParentID, current, userID)
			return false, domain.ErrStorageCorrupted
		}
		visited[current] = true

		event, err := events.GetByID(ctx, userID, current)
		if err != nil {
			return false, err
		}
		if event == nil || event.ParentEventID == nil {
			return false, nil
		}
		current = *event.ParentEventID
	}
}

// Descendants collects every event transitively reachable from eventID
// via the parent relation, excluding eventID itself. The walk is an
// iterative breadth-first expansion; within one parent, children come
// back in display order. A revisited id means the stored relation is no
// longer a forest and surfaces as ErrStorageCorrupted.
func Descendants(ctx context.Context, events repository.EventRepository, userID, eventID uuid.UUID) ([]domain.Event, error) {
	visited := map[uuid.UUID]bool{eventID: true}
	var result []domain.Event

	frontier := []uuid.UUID{eventID}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		children, err := events.ListByParent(ctx, userID, &current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if visited[child.ID] {
				log.Printf("hierarchy corruption: descendant walk of event %s revisits %s (user %s)", eventID, child.ID, userID)
				return nil, domain.ErrStorageCorrupted
			}
			visited[child.ID] = true
			result = append(result, child)
			frontier = append(frontier, child.ID)
		}
	}

	return result, nil
}

// DescendantIDs is Descendants reduced to the id set.
func DescendantIDs(ctx context.Context, events repository.EventRepository, userID, eventID uuid.UUID) ([]uuid.UUID, error) {
	descendants, err := Descendants(ctx, events, userID, eventID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(descendants))
	for i, d := range descendants {
		ids[i] = d.ID
	}
	return ids, nil
}

package service

import (
	"net/http"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
)

// The tree materializer reassembles a nested reply tree from the flat
// connected set returned by a single bulk query. The adjacency map is keyed
// by parent id; walking starts at the root's bucket and recurses into each
// child's bucket until an empty one (a leaf). The store invariant makes
// cycles impossible, but the walk still carries a visited set and fails fast
// instead of recursing forever if the invariant is ever broken.

func cycleDetected(id string) error {
	return &internal_errors.ErrorWithStatusCode{
		Message:    "Cycle detected in thread tree at " + id,
		StatusCode: http.StatusInternalServerError,
	}
}

type adjacency map[string][]domain.PopulatedThread

func buildAdjacency(connected []domain.PopulatedThread) adjacency {
	byParent := make(adjacency, len(connected))
	for _, t := range connected {
		if t.ParentId == nil {
			continue
		}
		key := t.ParentId.Hex()
		byParent[key] = append(byParent[key], t)
	}
	// deterministic sibling order: oldest reply first
	for _, bucket := range byParent {
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].CreatedAt.Before(bucket[j].CreatedAt)
		})
	}
	return byParent
}

// materialize builds the full nested tree rooted at root.
func materialize(root domain.PopulatedThread, connected []domain.PopulatedThread) (*api.ThreadNode, error) {
	byParent := buildAdjacency(connected)
	visited := make(map[string]bool, len(connected)+1)

	var attach func(t domain.PopulatedThread) (*api.ThreadNode, error)
	attach = func(t domain.PopulatedThread) (*api.ThreadNode, error) {
		id := t.Id.Hex()
		if visited[id] {
			return nil, cycleDetected(id)
		}
		visited[id] = true

		node := toNode(t)
		for _, child := range byParent[id] {
			childNode, err := attach(child)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, childNode)
		}
		return node, nil
	}

	return attach(root)
}

// closure walks the same adjacency map and returns the descendant closure:
// the root id plus every reachable descendant, together with the distinct
// author and community ids referenced along the way. Threads with missing
// refs contribute their id but are skipped for ref collection rather than
// failing the walk.
func closure(root domain.PopulatedThread, connected []domain.PopulatedThread) (ids []primitive.ObjectID, authorIds, communityIds []primitive.ObjectID, err error) {
	byParent := buildAdjacency(connected)
	visited := make(map[string]bool, len(connected)+1)
	seenAuthors := make(map[primitive.ObjectID]bool)
	seenCommunities := make(map[primitive.ObjectID]bool)

	var walk func(t domain.PopulatedThread) error
	walk = func(t domain.PopulatedThread) error {
		id := t.Id.Hex()
		if visited[id] {
			return cycleDetected(id)
		}
		visited[id] = true

		ids = append(ids, t.Id)
		if t.AuthorRef != nil && !seenAuthors[t.AuthorRef.Id] {
			seenAuthors[t.AuthorRef.Id] = true
			authorIds = append(authorIds, t.AuthorRef.Id)
		}
		if t.CommunityRef != nil && !seenCommunities[t.CommunityRef.Id] {
			seenCommunities[t.CommunityRef.Id] = true
			communityIds = append(communityIds, t.CommunityRef.Id)
		}
		for _, child := range byParent[id] {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err = walk(root); err != nil {
		return nil, nil, nil, err
	}
	return ids, authorIds, communityIds, nil
}

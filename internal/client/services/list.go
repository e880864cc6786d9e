package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/postdesk/internal/client/client"
	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/client/state"
	"github.com/dmitrijs2005/postdesk/internal/logging"
)

// PostList drives the post list view.
//
// Every method returns a snapshot of the list after the call. A fetch whose
// outcome was superseded by a newer request returns the current snapshot and
// no error.
type PostList interface {
	Load(ctx context.Context) (state.List, error)
	SetSearchText(text string) state.List
	SetCategory(id int64) state.List
	ApplyFilter(ctx context.Context) (state.List, error)
	GoToPage(ctx context.Context, page int) (state.List, error)
	NextPage(ctx context.Context) (state.List, error)
	PrevPage(ctx context.Context) (state.List, error)
	Delete(ctx context.Context, id models.ID) (state.List, error)
	Snapshot() state.List
}

type postList struct {
	client client.Client
	log    logging.Logger

	mu   sync.Mutex
	list state.List
}

func NewPostList(c client.Client, pageSize int, log logging.Logger) PostList {
	if log == nil {
		log = logging.Nop()
	}
	return &postList{
		client: c,
		log:    log.With("component", "post_list"),
		list:   state.NewList(pageSize),
	}
}

func (s *postList) Snapshot() state.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

func (s *postList) Load(ctx context.Context) (state.List, error) {
	s.mu.Lock()
	var req state.FetchRequest
	s.list, req = state.Reload(s.list)
	s.mu.Unlock()

	return s.run(ctx, req)
}

func (s *postList) SetSearchText(text string) state.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = state.SetSearchText(s.list, text)
	return s.list
}

func (s *postList) SetCategory(id int64) state.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = state.SetCategory(s.list, id)
	return s.list
}

func (s *postList) ApplyFilter(ctx context.Context) (state.List, error) {
	s.mu.Lock()
	var req state.FetchRequest
	s.list, req = state.ApplyFilter(s.list)
	s.mu.Unlock()

	return s.run(ctx, req)
}

func (s *postList) GoToPage(ctx context.Context, page int) (state.List, error) {
	return s.navigate(ctx, func(l state.List) (state.List, state.FetchRequest, bool) {
		return state.GoToPage(l, page)
	})
}

func (s *postList) NextPage(ctx context.Context) (state.List, error) {
	return s.navigate(ctx, state.NextPage)
}

func (s *postList) PrevPage(ctx context.Context) (state.List, error) {
	return s.navigate(ctx, state.PrevPage)
}

func (s *postList) navigate(ctx context.Context, move func(state.List) (state.List, state.FetchRequest, bool)) (state.List, error) {
	s.mu.Lock()
	next, req, ok := move(s.list)
	if !ok {
		l := s.list
		s.mu.Unlock()
		return l, nil
	}
	s.list = next
	s.mu.Unlock()

	return s.run(ctx, req)
}

// Delete removes the post on the server, then from the local results. The
// list is not refetched.
func (s *postList) Delete(ctx context.Context, id models.ID) (state.List, error) {
	if err := s.client.DeletePost(ctx, id); err != nil {
		s.log.Warn(ctx, "delete failed", "id", id, "error", err)
		return s.Snapshot(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.list, removed = state.RemovePost(s.list, id)
	s.log.Info(ctx, "post deleted", "id", id, "removed_locally", removed)
	return s.list, nil
}

// run performs req and resolves its outcome.
func (s *postList) run(ctx context.Context, req state.FetchRequest) (state.List, error) {
	s.log.Debug(ctx, "fetching", "generation", req.Generation, "mode", req.Mode, "page", req.Page)

	res := s.fetch(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	var applied bool
	s.list, applied = state.Resolve(s.list, res)
	if !applied {
		s.log.Debug(ctx, "discarded stale result", "generation", res.Generation, "latest", s.list.Generation)
		return s.list, nil
	}
	if res.Err != nil {
		s.log.Warn(ctx, "fetch failed", "generation", res.Generation, "error", res.Err)
		return s.list, res.Err
	}

	s.log.Debug(ctx, "fetched", "generation", res.Generation, "results", len(s.list.Results), "total", s.list.TotalCount)
	return s.list, nil
}

func (s *postList) fetch(ctx context.Context, req state.FetchRequest) state.FetchResult {
	res := state.FetchResult{Generation: req.Generation}

	if req.Mode == state.Filtered {
		posts, err := s.client.Search(ctx, req.Query)
		if err != nil {
			res.Err = fmt.Errorf("search: %w", err)
			return res
		}
		res.Results = posts
		res.Count = len(posts)
		return res
	}

	page, err := s.client.ListPreviews(ctx, req.Page, req.PageSize)
	if err != nil {
		res.Err = fmt.Errorf("load page %d: %w", req.Page, err)
		return res
	}
	res.Results = page.Results
	res.Count = page.Count
	return res
}

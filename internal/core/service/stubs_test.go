package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Gateways
// ---------------------------------------------------------------------------

type stubArticles struct {
	publishedFn  func(ctx context.Context) ([]domain.Article, error)
	byCategoryFn func(ctx context.Context, category string) ([]domain.Article, error)
	popularFn    func(ctx context.Context) ([]domain.Article, error)
	bySlugFn     func(ctx context.Context, slug string) (*domain.ArticleDetail, error)
	authorFn     func(ctx context.Context, username string) (*domain.AuthorProfile, error)
	commentFn    func(ctx context.Context, in domain.CommentInput) error
	allFn        func(ctx context.Context) ([]domain.Article, error)
	ownFn        func(ctx context.Context) ([]domain.Article, error)
	staffFn      func(ctx context.Context, id string) (*domain.Article, error)
	createFn     func(ctx context.Context, in domain.ArticleInput) (*domain.Article, error)
	updateFn     func(ctx context.Context, id string, in domain.ArticleInput) (*domain.Article, error)
	toggleFn     func(ctx context.Context, id string) (*domain.Article, error)
	deleteFn     func(ctx context.Context, id string) error

	calls map[string]int
}

func (s *stubArticles) hit(name string) {
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[name]++
}

func (s *stubArticles) Published(ctx context.Context) ([]domain.Article, error) {
	s.hit("Published")
	return s.publishedFn(ctx)
}

func (s *stubArticles) ByCategory(ctx context.Context, category string) ([]domain.Article, error) {
	s.hit("ByCategory")
	return s.byCategoryFn(ctx, category)
}

func (s *stubArticles) Popular(ctx context.Context) ([]domain.Article, error) {
	s.hit("Popular")
	if s.popularFn == nil {
		return []domain.Article{}, nil
	}
	return s.popularFn(ctx)
}

func (s *stubArticles) BySlug(ctx context.Context, slug string) (*domain.ArticleDetail, error) {
	s.hit("BySlug")
	return s.bySlugFn(ctx, slug)
}

func (s *stubArticles) AuthorProfile(ctx context.Context, username string) (*domain.AuthorProfile, error) {
	s.hit("AuthorProfile")
	return s.authorFn(ctx, username)
}

func (s *stubArticles) PostComment(ctx context.Context, in domain.CommentInput) error {
	s.hit("PostComment")
	return s.commentFn(ctx, in)
}

func (s *stubArticles) All(ctx context.Context) ([]domain.Article, error) {
	s.hit("All")
	return s.allFn(ctx)
}

func (s *stubArticles) Own(ctx context.Context) ([]domain.Article, error) {
	s.hit("Own")
	return s.ownFn(ctx)
}

func (s *stubArticles) StaffArticle(ctx context.Context, id string) (*domain.Article, error) {
	s.hit("StaffArticle")
	return s.staffFn(ctx, id)
}

func (s *stubArticles) Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	s.hit("Create")
	return s.createFn(ctx, in)
}

func (s *stubArticles) Update(ctx context.Context, id string, in domain.ArticleInput) (*domain.Article, error) {
	s.hit("Update")
	return s.updateFn(ctx, id, in)
}

func (s *stubArticles) TogglePublish(ctx context.Context, id string) (*domain.Article, error) {
	s.hit("TogglePublish")
	return s.toggleFn(ctx, id)
}

func (s *stubArticles) Delete(ctx context.Context, id string) error {
	s.hit("Delete")
	return s.deleteFn(ctx, id)
}

type stubEdits struct {
	listFn    func(ctx context.Context) ([]domain.EditRequest, error)
	requestFn func(ctx context.Context, articleID string) error
	approveFn func(ctx context.Context, id string) error
}

func (s *stubEdits) List(ctx context.Context) ([]domain.EditRequest, error) { return s.listFn(ctx) }
func (s *stubEdits) Request(ctx context.Context, articleID string) error {
	return s.requestFn(ctx, articleID)
}
func (s *stubEdits) Approve(ctx context.Context, id string) error { return s.approveFn(ctx, id) }

type stubAuth struct {
	loginFn          func(ctx context.Context, email, password string) (string, *domain.UserProfile, error)
	logoutFn         func(ctx context.Context, token string) error
	forgotFn         func(ctx context.Context, email string) error
	resetFn          func(ctx context.Context, token, password string) error
	profileFn        func(ctx context.Context) (*domain.UserProfile, error)
	updateProfileFn  func(ctx context.Context, in domain.ProfileUpdate) (*domain.UserProfile, error)
	changePasswordFn func(ctx context.Context, in domain.PasswordChange) error
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (string, *domain.UserProfile, error) {
	return s.loginFn(ctx, email, password)
}
func (s *stubAuth) Logout(ctx context.Context, token string) error { return s.logoutFn(ctx, token) }
func (s *stubAuth) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}
func (s *stubAuth) ResetPassword(ctx context.Context, token, password string) error {
	return s.resetFn(ctx, token, password)
}
func (s *stubAuth) Profile(ctx context.Context) (*domain.UserProfile, error) {
	return s.profileFn(ctx)
}
func (s *stubAuth) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.UserProfile, error) {
	return s.updateProfileFn(ctx, in)
}
func (s *stubAuth) ChangePassword(ctx context.Context, in domain.PasswordChange) error {
	return s.changePasswordFn(ctx, in)
}

// ---------------------------------------------------------------------------
// In-memory stores
// ---------------------------------------------------------------------------

type memListCache struct {
	mu      sync.Mutex
	gens    map[string]int64
	entries map[string][]byte
	// beforeCommit runs between fetch and commit, to simulate a newer
	// refresh starting while a response is in flight.
	beforeCommit func(key string)
}

func newMemListCache() *memListCache {
	return &memListCache{gens: make(map[string]int64), entries: make(map[string][]byte)}
}

func (c *memListCache) Begin(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	return c.gens[key], nil
}

func (c *memListCache) Commit(_ context.Context, key string, gen int64, payload []byte, _ time.Duration) (bool, error) {
	if c.beforeCommit != nil {
		hook := c.beforeCommit
		c.beforeCommit = nil
		hook(key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return false, nil
	}
	c.entries[key] = payload
	return true, nil
}

func (c *memListCache) Load(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	return b, ok, nil
}

func (c *memListCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

type memDrafts struct {
	drafts map[string]domain.ArticleInput
}

func newMemDrafts() *memDrafts { return &memDrafts{drafts: make(map[string]domain.ArticleInput)} }

func (d *memDrafts) Load(_ context.Context, owner, form string) (*domain.ArticleInput, error) {
	in, ok := d.drafts[owner+":"+form]
	if !ok {
		return nil, nil
	}
	return &in, nil
}

func (d *memDrafts) Save(_ context.Context, owner, form string, in domain.ArticleInput) error {
	d.drafts[owner+":"+form] = in
	return nil
}

func (d *memDrafts) Discard(_ context.Context, owner, form string) error {
	delete(d.drafts, owner+":"+form)
	return nil
}

type memConfirmations struct {
	tokens map[string]string
	seq    int
}

func newMemConfirmations() *memConfirmations {
	return &memConfirmations{tokens: make(map[string]string)}
}

func (m *memConfirmations) Issue(_ context.Context, scope string) (string, error) {
	m.seq++
	tok := fmt.Sprintf("tok-%d", m.seq)
	m.tokens[tok] = scope
	return tok, nil
}

func (m *memConfirmations) Consume(_ context.Context, scope, token string) (bool, error) {
	got, ok := m.tokens[token]
	delete(m.tokens, token)
	return ok && got == scope, nil
}

type stubLimiter struct {
	allowFn func(bucket, key string) (bool, error)
}

func (l *stubLimiter) Allow(_ context.Context, bucket, key string) (bool, error) {
	return l.allowFn(bucket, key)
}

type recordingSink struct {
	entries []domain.AuditEntry
}

func (r *recordingSink) Record(e domain.AuditEntry) { r.entries = append(r.entries, e) }

func (r *recordingSink) actions() []domain.AuditAction {
	out := make([]domain.AuditAction, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

func sessionFor(id string, role domain.Role) *domain.Session {
	return &domain.Session{
		Token:   "token-" + id,
		Profile: &domain.UserProfile{ID: id, FirstName: "Test", LastName: string(role), Role: role},
	}
}

// service.go
//
// A community catalog service for speedcubing algorithms
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of cubehub.
// cubehub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// cubehub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with cubehub.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package catalog answers every catalog question from an in-memory snapshot and
// routes mutations through the sync facade.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/cubehub/internal/models"
	"github.com/localnerve/cubehub/internal/store"
	"github.com/localnerve/cubehub/internal/types"
	"golang.org/x/sync/errgroup"
)

// Session is the caller's identity. A nil User means nobody is logged in.
type Session struct {
	User *models.User `json:"user"`
}

// Authenticated reports whether a user is logged in.
func (s Session) Authenticated() bool { return s.User != nil }

// Service ties the snapshot to the store.
type Service struct {
	store store.Store
	snap  *Snapshot
	now   func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service over st with an empty snapshot. Call Load to fill it.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, snap: &Snapshot{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot exposes the materialized view.
func (s *Service) Snapshot() *Snapshot { return s.snap }

// CloudEnabled reports whether records are shared through the remote store.
func (s *Service) CloudEnabled() bool { return s.store.Enabled() }

// Load fetches algorithms and comments concurrently and replaces the snapshot.
func (s *Service) Load(ctx context.Context) error {
	var (
		algs     []models.Algorithm
		comments []models.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		algs, err = s.store.FetchAlgorithms(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.store.FetchComments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.snap.Replace(algs, comments)
	slog.Info("Catalog loaded", "algorithms", len(algs), "comments", len(comments), "cloud", s.store.Enabled())
	return nil
}

// Session returns the stored session.
func (s *Service) Session(ctx context.Context) (Session, error) {
	u, err := s.store.CurrentUser(ctx)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u}, nil
}

// RegisterInput is a registration request. Passwords are not kept.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
}

// Register adds a user. Usernames and emails must be unused. It does not log in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" {
		return models.User{}, ErrValidation.WithMessage("Username and email are required")
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return models.User{}, ErrDuplicateUsername
		}
		if u.Email == email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	u := models.User{
		ID:          uuid.NewString(),
		Username:    username,
		Email:       email,
		Avatar:      strings.TrimSpace(in.Avatar),
		Following:   []string{},
		Collections: []string{},
	}
	if err := s.store.SetUsers(ctx, append(users, u)); err != nil {
		return models.User{}, err
	}
	slog.Info("User registered", "username", u.Username)
	return u, nil
}

// Login starts a session for the user registered with email. There is no
// password check.
func (s *Service) Login(ctx context.Context, email string) (Session, error) {
	email = strings.TrimSpace(email)
	users, err := s.store.Users(ctx)
	if err != nil {
		return Session{}, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.Email == email })
	if i < 0 {
		return Session{}, ErrUserNotFound
	}
	u := users[i].Clone()
	if err := s.store.SetCurrentUser(ctx, &u); err != nil {
		return Session{}, err
	}
	return Session{User: &u}, nil
}

// Logout ends the session.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.SetCurrentUser(ctx, nil)
}

// UploadInput holds the user supplied fields of a new algorithm.
type UploadInput struct {
	CubeType  string   `json:"cube_type"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Algorithm string   `json:"algorithm"`
	Images    []string `json:"images"`
}

// Saved reports a created record and whether the remote store accepted it.
// Synced is true in local-only mode.
type Saved[T any] struct {
	Record T    `json:"record"`
	Synced bool `json:"synced"`
}

// Upload creates an algorithm owned by the session user. The local mirror always
// keeps it; the snapshot only shows it once the store reports success.
func (s *Service) Upload(ctx context.Context, sess Session, in UploadInput) (Saved[models.Algorithm], error) {
	var out Saved[models.Algorithm]
	if !sess.Authenticated() {
		return out, ErrUnauthenticated
	}

	a, err := s.newAlgorithm(sess.User.Username, in)
	if err != nil {
		return out, err
	}
	ok, err := s.store.SaveAlgorithm(ctx, a)
	if err != nil {
		return out, err
	}
	if ok {
		s.snap.AddAlgorithm(a)
	}
	return Saved[models.Algorithm]{Record: a, Synced: ok}, nil
}

func (s *Service) newAlgorithm(contributor string, in UploadInput) (models.Algorithm, error) {
	title := strings.TrimSpace(in.Title)
	notation := strings.TrimSpace(in.Algorithm)
	if title == "" || notation == "" {
		return models.Algorithm{}, ErrValidation.WithMessage("Title and algorithm are required")
	}
	cubeType := orDefault(in.CubeType, "3x3")
	if !models.IsCubeType(cubeType) {
		return models.Algorithm{}, ErrValidation.WithMessage("Unknown cube type %q", cubeType)
	}
	category := orDefault(in.Category, models.Categories[0])
	if !models.IsCategory(category) {
		return models.Algorithm{}, ErrValidation.WithMessage("Unknown category %q", category)
	}
	if len(in.Images) > models.MaxImages {
		return models.Algorithm{}, ErrTooManyImages
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Algorithm{}, fmt.Errorf("generate algorithm id: %w", err)
	}
	images := slices.Clone(in.Images)
	if images == nil {
		images = []string{}
	}
	return models.Algorithm{
		ID:          id.String(),
		CubeType:    cubeType,
		Title:       title,
		Category:    category,
		Algorithm:   notation,
		Contributor: contributor,
		Images:      images,
		CreatedAt:   types.NewFlexTime(s.now().UTC()),
	}, nil
}

// orDefault returns the trimmed value, or def when it is blank.
func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

// AddComment attaches a comment by the session user to an algorithm in the snapshot.
func (s *Service) AddComment(ctx context.Context, sess Session, algorithmID, content string) (Saved[models.Comment], error) {
	var out Saved[models.Comment]
	if !sess.Authenticated() {
		return out, ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return out, ErrValidation.WithMessage("Comment cannot be empty")
	}
	if _, ok := FindAlgorithm(s.snap.Algorithms(), algorithmID); !ok {
		return out, ErrAlgorithmNotFound
	}

	lang, err := s.store.Language(ctx)
	if err != nil {
		return out, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return out, fmt.Errorf("generate comment id: %w", err)
	}
	at := s.now()
	c := models.Comment{
		ID:          id.String(),
		AlgorithmID: algorithmID,
		Content:     content,
		Author:      sess.User.Username,
		CreateTime:  FormatCreateTime(at, lang),
		CreatedAt:   types.NewFlexTime(at.UTC()),
	}
	ok, err := s.store.SaveComment(ctx, c)
	if err != nil {
		return out, err
	}
	if ok {
		s.snap.AddComment(c)
	}
	return Saved[models.Comment]{Record: c, Synced: ok}, nil
}

// FormatCreateTime renders the display timestamp the way each UI language shows it.
func FormatCreateTime(t time.Time, lang string) string {
	if lang == store.LangEnglish {
		return t.Format("1/2/2006, 3:04:05 PM")
	}
	return t.Format("2006/1/2 15:04:05")
}

// HideComment removes one of the session user's comments from the snapshot.
// Stored copies, local and remote, are kept.
func (s *Service) HideComment(_ context.Context, sess Session, commentID string) error {
	if !sess.Authenticated() {
		return ErrUnauthenticated
	}
	comments := s.snap.Comments()
	i := slices.IndexFunc(comments, func(c models.Comment) bool { return c.ID == commentID })
	if i < 0 {
		return ErrCommentNotFound
	}
	if comments[i].Author != sess.User.Username {
		return ErrNotAuthor
	}
	s.snap.HideComment(commentID)
	return nil
}

// ToggleCollect flips algorithmID in the session user's collections and persists it.
func (s *Service) ToggleCollect(ctx context.Context, sess Session, algorithmID string) (Session, error) {
	u, err := ToggleCollect(sess.User, algorithmID)
	if err != nil {
		return sess, err
	}
	return s.updateUser(ctx, u)
}

// ToggleFollow flips username in the session user's follow list and persists it.
func (s *Service) ToggleFollow(ctx context.Context, sess Session, username string) (Session, error) {
	u, err := ToggleFollow(sess.User, username)
	if err != nil {
		return sess, err
	}
	return s.updateUser(ctx, u)
}

func (s *Service) updateUser(ctx context.Context, u models.User) (Session, error) {
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return Session{}, err
	}
	return Session{User: &u}, nil
}

// Search runs a filter over the snapshot.
func (s *Service) Search(f Filter) []models.Algorithm {
	return Search(s.snap.Algorithms(), f)
}

// Comments returns the comments of one algorithm, newest first.
func (s *Service) Comments(algorithmID string) []models.Comment {
	return CommentsFor(s.snap.Comments(), algorithmID)
}

// Detail is an algorithm page.
type Detail struct {
	Algorithm models.Algorithm `json:"algorithm"`
	Comments  []models.Comment `json:"comments"`
	Collected bool             `json:"collected"`
	// FollowingContributor is true when the session user follows the contributor.
	FollowingContributor bool `json:"following_contributor"`
}

// Detail assembles the algorithm page for id.
func (s *Service) Detail(sess Session, id string) (Detail, error) {
	a, ok := FindAlgorithm(s.snap.Algorithms(), id)
	if !ok {
		return Detail{}, ErrAlgorithmNotFound
	}
	d := Detail{Algorithm: a, Comments: CommentsFor(s.snap.Comments(), id)}
	if sess.Authenticated() {
		d.Collected = sess.User.HasCollected(id)
		d.FollowingContributor = sess.User.Follows(a.Contributor)
	}
	return d, nil
}

// Profile is a user page.
type Profile struct {
	User        models.User        `json:"user"`
	Uploads     []models.Algorithm `json:"uploads"`
	Collections []models.Algorithm `json:"collections"`
	Comments    []models.Comment   `json:"comments"`
	Following   []string           `json:"following"`
	IsSelf      bool               `json:"is_self"`
	// Followed is true when the session user follows this user.
	Followed bool `json:"followed"`
}

// Profile assembles the page of username, or of the session user when username
// is empty.
func (s *Service) Profile(ctx context.Context, sess Session, username string) (Profile, error) {
	var target *models.User
	if username == "" {
		if !sess.Authenticated() {
			return Profile{}, ErrUnauthenticated
		}
		target = sess.User
	} else {
		users, err := s.store.Users(ctx)
		if err != nil {
			return Profile{}, err
		}
		i := slices.IndexFunc(users, func(u models.User) bool { return u.Username == username })
		if i < 0 {
			return Profile{}, ErrUserNotFound.WithMessage("User %q not found", username)
		}
		target = &users[i]
	}

	u := target.Clone()
	algs := s.snap.Algorithms()
	p := Profile{
		User:        u,
		Uploads:     AlgorithmsBy(algs, u.Username),
		Collections: AlgorithmsIn(algs, u.Collections),
		Comments:    CommentsBy(s.snap.Comments(), u.Username),
		Following:   u.Following,
	}
	if sess.Authenticated() {
		p.IsSelf = sess.User.ID == u.ID
		p.Followed = !p.IsSelf && sess.User.Follows(u.Username)
	}
	return p, nil
}

// Language returns the stored UI language.
func (s *Service) Language(ctx context.Context) (string, error) {
	return s.store.Language(ctx)
}

// SetLanguage stores the UI language.
func (s *Service) SetLanguage(ctx context.Context, lang string) error {
	return s.store.SetLanguage(ctx, lang)
}

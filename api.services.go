package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// The services enforce the catalog write rules on top of storage:
// natural keys stay unique and mutations only target existing records.
// The uniqueness pre-check reads before writing, so two concurrent
// creates of the same key can still race past it. The storage unique
// handling is the final arbiter and such a loss surfaces as an
// infrastructure fault rather than silent duplication.

// Services groups the per-entity business services handed to the api.
type Services struct {
	Books      BookServiceProvider
	Authors    AuthorServiceProvider
	Genres     GenreServiceProvider
	Publishers PublisherServiceProvider
}

// BookServiceProvider is the books business contract.
type BookServiceProvider interface {
	List(ctx context.Context, filter BookFilter) ([]Book, error)
	Search(ctx context.Context, term string) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, payload BookCreate) (Book, error)
	Update(ctx context.Context, id int64, payload BookUpdate) (Book, error)
	Delete(ctx context.Context, id int64) error
	SetCover(ctx context.Context, id int64, coverURL string) (Book, error)
}

// AuthorServiceProvider is the authors business contract.
type AuthorServiceProvider interface {
	List(ctx context.Context) ([]Author, error)
	Get(ctx context.Context, id int64) (Author, error)
	Create(ctx context.Context, payload AuthorCreate) (Author, error)
	Update(ctx context.Context, id int64, payload AuthorUpdate) (Author, error)
	Delete(ctx context.Context, id int64) error
}

// GenreServiceProvider is the genres business contract.
type GenreServiceProvider interface {
	List(ctx context.Context) ([]Genre, error)
	Get(ctx context.Context, id int64) (Genre, error)
	Create(ctx context.Context, payload GenreCreate) (Genre, error)
	Update(ctx context.Context, id int64, payload GenreUpdate) (Genre, error)
	Delete(ctx context.Context, id int64) error
}

// PublisherServiceProvider is the publishers business contract.
type PublisherServiceProvider interface {
	List(ctx context.Context) ([]Publisher, error)
	Get(ctx context.Context, id int64) (Publisher, error)
	Create(ctx context.Context, payload PublisherCreate) (Publisher, error)
	Update(ctx context.Context, id int64, payload PublisherUpdate) (Publisher, error)
	Delete(ctx context.Context, id int64) error
}

// BookService implements BookServiceProvider.
type BookService struct {
	logger  *zap.Logger
	storage BookStorage
}

// NewBookService provides the books business service.
func NewBookService(logger *zap.Logger, storage BookStorage) *BookService {
	return &BookService{logger: logger, storage: storage}
}

// List returns the books matching the filter, or all books when the
// filter is empty.
func (s *BookService) List(ctx context.Context, filter BookFilter) ([]Book, error) {
	if filter.Empty() {
		return s.storage.FindAll(ctx)
	}
	return s.storage.FindByFilters(ctx, filter)
}

// Search returns the books whose title or isbn contains the term.
func (s *BookService) Search(ctx context.Context, term string) ([]Book, error) {
	return s.storage.Search(ctx, term)
}

// Get returns one book by id.
func (s *BookService) Get(ctx context.Context, id int64) (Book, error) {
	return s.storage.FindByID(ctx, id)
}

// Create adds a new book after making sure no book already carries the
// same title.
func (s *BookService) Create(ctx context.Context, payload BookCreate) (Book, error) {
	existing, err := s.storage.FindByTitle(ctx, payload.Title)
	if err == nil {
		s.logger.Info("rejected book creation on duplicated title", zap.Int64("existing.id", existing.ID))
		return Book{}, NewInvalidRequestError("a book with this title already exists", nil)
	}
	if !errors.Is(err, ErrBookNotFound) {
		return Book{}, err
	}
	return s.storage.Create(ctx, payload)
}

// Update applies a partial update to an existing book. A title change
// must not collide with another book.
func (s *BookService) Update(ctx context.Context, id int64, payload BookUpdate) (Book, error) {
	if payload.Empty() {
		return Book{}, ErrNothingToUpdate
	}
	if payload.Title != nil {
		existing, err := s.storage.FindByTitle(ctx, *payload.Title)
		if err == nil && existing.ID != id {
			s.logger.Info("rejected book update on duplicated title", zap.Int64("existing.id", existing.ID))
			return Book{}, NewInvalidRequestError("a book with this title already exists", nil)
		}
		if err != nil && !errors.Is(err, ErrBookNotFound) {
			return Book{}, err
		}
	}
	return s.storage.Update(ctx, id, payload)
}

// Delete removes one book by id.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	return s.storage.Delete(ctx, id)
}

// SetCover records the cover url of an existing book.
func (s *BookService) SetCover(ctx context.Context, id int64, coverURL string) (Book, error) {
	return s.storage.Update(ctx, id, BookUpdate{Cover: &coverURL})
}

// AuthorService implements AuthorServiceProvider.
type AuthorService struct {
	logger  *zap.Logger
	storage AuthorStorage
}

// NewAuthorService provides the authors business service.
func NewAuthorService(logger *zap.Logger, storage AuthorStorage) *AuthorService {
	return &AuthorService{logger: logger, storage: storage}
}

func (s *AuthorService) List(ctx context.Context) ([]Author, error) {
	return s.storage.FindAll(ctx)
}

func (s *AuthorService) Get(ctx context.Context, id int64) (Author, error) {
	return s.storage.FindByID(ctx, id)
}

// Create adds a new author after making sure no author already carries
// the same name and last name pair.
func (s *AuthorService) Create(ctx context.Context, payload AuthorCreate) (Author, error) {
	existing, err := s.storage.FindByName(ctx, payload.Name, payload.LastName)
	if err == nil {
		s.logger.Info("rejected author creation on duplicated name", zap.Int64("existing.id", existing.ID))
		return Author{}, NewInvalidRequestError("an author with this name already exists", nil)
	}
	if !errors.Is(err, ErrAuthorNotFound) {
		return Author{}, err
	}
	return s.storage.Create(ctx, payload)
}

// Update applies a partial update to an existing author. A renaming
// must not collide with another author.
func (s *AuthorService) Update(ctx context.Context, id int64, payload AuthorUpdate) (Author, error) {
	if payload.Empty() {
		return Author{}, ErrNothingToUpdate
	}
	if payload.Name != nil || payload.LastName != nil {
		current, err := s.storage.FindByID(ctx, id)
		if err != nil {
			return Author{}, err
		}
		name, lastName := current.Name, current.LastName
		if payload.Name != nil {
			name = *payload.Name
		}
		if payload.LastName != nil {
			lastName = *payload.LastName
		}
		existing, err := s.storage.FindByName(ctx, name, lastName)
		if err == nil && existing.ID != id {
			s.logger.Info("rejected author update on duplicated name", zap.Int64("existing.id", existing.ID))
			return Author{}, NewInvalidRequestError("an author with this name already exists", nil)
		}
		if err != nil && !errors.Is(err, ErrAuthorNotFound) {
			return Author{}, err
		}
	}
	return s.storage.Update(ctx, id, payload)
}

func (s *AuthorService) Delete(ctx context.Context, id int64) error {
	return s.storage.Delete(ctx, id)
}

// GenreService implements GenreServiceProvider.
type GenreService struct {
	logger  *zap.Logger
	storage GenreStorage
}

// NewGenreService provides the genres business service.
func NewGenreService(logger *zap.Logger, storage GenreStorage) *GenreService {
	return &GenreService{logger: logger, storage: storage}
}

func (s *GenreService) List(ctx context.Context) ([]Genre, error) {
	return s.storage.FindAll(ctx)
}

func (s *GenreService) Get(ctx context.Context, id int64) (Genre, error) {
	return s.storage.FindByID(ctx, id)
}

// Create adds a new genre after making sure the name is not taken.
func (s *GenreService) Create(ctx context.Context, payload GenreCreate) (Genre, error) {
	existing, err := s.storage.FindByName(ctx, payload.Name)
	if err == nil {
		s.logger.Info("rejected genre creation on duplicated name", zap.Int64("existing.id", existing.ID))
		return Genre{}, NewInvalidRequestError("a genre with this name already exists", nil)
	}
	if !errors.Is(err, ErrGenreNotFound) {
		return Genre{}, err
	}
	return s.storage.Create(ctx, payload)
}

// Update renames an existing genre without colliding with another one.
func (s *GenreService) Update(ctx context.Context, id int64, payload GenreUpdate) (Genre, error) {
	if payload.Empty() {
		return Genre{}, ErrNothingToUpdate
	}
	existing, err := s.storage.FindByName(ctx, *payload.Name)
	if err == nil && existing.ID != id {
		s.logger.Info("rejected genre update on duplicated name", zap.Int64("existing.id", existing.ID))
		return Genre{}, NewInvalidRequestError("a genre with this name already exists", nil)
	}
	if err != nil && !errors.Is(err, ErrGenreNotFound) {
		return Genre{}, err
	}
	return s.storage.Update(ctx, id, payload)
}

func (s *GenreService) Delete(ctx context.Context, id int64) error {
	return s.storage.Delete(ctx, id)
}

// PublisherService implements PublisherServiceProvider.
type PublisherService struct {
	logger  *zap.Logger
	storage PublisherStorage
}

// NewPublisherService provides the publishers business service.
func NewPublisherService(logger *zap.Logger, storage PublisherStorage) *PublisherService {
	return &PublisherService{logger: logger, storage: storage}
}

func (s *PublisherService) List(ctx context.Context) ([]Publisher, error) {
	return s.storage.FindAll(ctx)
}

func (s *PublisherService) Get(ctx context.Context, id int64) (Publisher, error) {
	return s.storage.FindByID(ctx, id)
}

// Create adds a new publisher after making sure the name is not taken.
func (s *PublisherService) Create(ctx context.Context, payload PublisherCreate) (Publisher, error) {
	existing, err := s.storage.FindByName(ctx, payload.Name)
	if err == nil {
		s.logger.Info("rejected publisher creation on duplicated name", zap.Int64("existing.id", existing.ID))
		return Publisher{}, NewInvalidRequestError("a publisher with this name already exists", nil)
	}
	if !errors.Is(err, ErrPublisherNotFound) {
		return Publisher{}, err
	}
	return s.storage.Create(ctx, payload)
}

// Update applies a partial update to an existing publisher. A renaming
// must not collide with another publisher.
func (s *PublisherService) Update(ctx context.Context, id int64, payload PublisherUpdate) (Publisher, error) {
	if payload.Empty() {
		return Publisher{}, ErrNothingToUpdate
	}
	if payload.Name != nil {
		existing, err := s.storage.FindByName(ctx, *payload.Name)
		if err == nil && existing.ID != id {
			s.logger.Info("rejected publisher update on duplicated name", zap.Int64("existing.id", existing.ID))
			return Publisher{}, NewInvalidRequestError("a publisher with this name already exists", nil)
		}
		if err != nil && !errors.Is(err, ErrPublisherNotFound) {
			return Publisher{}, err
		}
	}
	return s.storage.Update(ctx, id, payload)
}

func (s *PublisherService) Delete(ctx context.Context, id int64) error {
	return s.storage.Delete(ctx, id)
}

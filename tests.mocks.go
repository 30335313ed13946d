package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	FindAllFunc       func(ctx context.Context) ([]Book, error)
	FindByIDFunc      func(ctx context.Context, id int64) (Book, error)
	FindByTitleFunc   func(ctx context.Context, title string) (Book, error)
	FindByFiltersFunc func(ctx context.Context, filter BookFilter) ([]Book, error)
	SearchFunc        func(ctx context.Context, term string) ([]Book, error)
	CreateFunc        func(ctx context.Context, payload BookCreate) (Book, error)
	UpdateFunc        func(ctx context.Context, id int64, payload BookUpdate) (Book, error)
	DeleteFunc        func(ctx context.Context, id int64) error
}

func (m *MockBookStorage) FindAll(ctx context.Context) ([]Book, error) {
	return m.FindAllFunc(ctx)
}

func (m *MockBookStorage) FindByID(ctx context.Context, id int64) (Book, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockBookStorage) FindByTitle(ctx context.Context, title string) (Book, error) {
	return m.FindByTitleFunc(ctx, title)
}

func (m *MockBookStorage) FindByFilters(ctx context.Context, filter BookFilter) ([]Book, error) {
	return m.FindByFiltersFunc(ctx, filter)
}

func (m *MockBookStorage) Search(ctx context.Context, term string) ([]Book, error) {
	return m.SearchFunc(ctx, term)
}

func (m *MockBookStorage) Create(ctx context.Context, payload BookCreate) (Book, error) {
	return m.CreateFunc(ctx, payload)
}

func (m *MockBookStorage) Update(ctx context.Context, id int64, payload BookUpdate) (Book, error) {
	return m.UpdateFunc(ctx, id, payload)
}

func (m *MockBookStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type MockAuthorStorage struct {
	FindAllFunc    func(ctx context.Context) ([]Author, error)
	FindByIDFunc   func(ctx context.Context, id int64) (Author, error)
	FindByNameFunc func(ctx context.Context, name, lastName string) (Author, error)
	CreateFunc     func(ctx context.Context, payload AuthorCreate) (Author, error)
	UpdateFunc     func(ctx context.Context, id int64, payload AuthorUpdate) (Author, error)
	DeleteFunc     func(ctx context.Context, id int64) error
}

func (m *MockAuthorStorage) FindAll(ctx context.Context) ([]Author, error) {
	return m.FindAllFunc(ctx)
}

func (m *MockAuthorStorage) FindByID(ctx context.Context, id int64) (Author, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockAuthorStorage) FindByName(ctx context.Context, name, lastName string) (Author, error) {
	return m.FindByNameFunc(ctx, name, lastName)
}

func (m *MockAuthorStorage) Create(ctx context.Context, payload AuthorCreate) (Author, error) {
	return m.CreateFunc(ctx, payload)
}

func (m *MockAuthorStorage) Update(ctx context.Context, id int64, payload AuthorUpdate) (Author, error) {
	return m.UpdateFunc(ctx, id, payload)
}

func (m *MockAuthorStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type MockGenreStorage struct {
	FindAllFunc    func(ctx context.Context) ([]Genre, error)
	FindByIDFunc   func(ctx context.Context, id int64) (Genre, error)
	FindByNameFunc func(ctx context.Context, name string) (Genre, error)
	CreateFunc     func(ctx context.Context, payload GenreCreate) (Genre, error)
	UpdateFunc     func(ctx context.Context, id int64, payload GenreUpdate) (Genre, error)
	DeleteFunc     func(ctx context.Context, id int64) error
}

func (m *MockGenreStorage) FindAll(ctx context.Context) ([]Genre, error) {
	return m.FindAllFunc(ctx)
}

func (m *MockGenreStorage) FindByID(ctx context.Context, id int64) (Genre, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockGenreStorage) FindByName(ctx context.Context, name string) (Genre, error) {
	return m.FindByNameFunc(ctx, name)
}

func (m *MockGenreStorage) Create(ctx context.Context, payload GenreCreate) (Genre, error) {
	return m.CreateFunc(ctx, payload)
}

func (m *MockGenreStorage) Update(ctx context.Context, id int64, payload GenreUpdate) (Genre, error) {
	return m.UpdateFunc(ctx, id, payload)
}

func (m *MockGenreStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type MockPublisherStorage struct {
	FindAllFunc    func(ctx context.Context) ([]Publisher, error)
	FindByIDFunc   func(ctx context.Context, id int64) (Publisher, error)
	FindByNameFunc func(ctx context.Context, name string) (Publisher, error)
	CreateFunc     func(ctx context.Context, payload PublisherCreate) (Publisher, error)
	UpdateFunc     func(ctx context.Context, id int64, payload PublisherUpdate) (Publisher, error)
	DeleteFunc     func(ctx context.Context, id int64) error
}

func (m *MockPublisherStorage) FindAll(ctx context.Context) ([]Publisher, error) {
	return m.FindAllFunc(ctx)
}

func (m *MockPublisherStorage) FindByID(ctx context.Context, id int64) (Publisher, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockPublisherStorage) FindByName(ctx context.Context, name string) (Publisher, error) {
	return m.FindByNameFunc(ctx, name)
}

func (m *MockPublisherStorage) Create(ctx context.Context, payload PublisherCreate) (Publisher, error) {
	return m.CreateFunc(ctx, payload)
}

func (m *MockPublisherStorage) Update(ctx context.Context, id int64, payload PublisherUpdate) (Publisher, error) {
	return m.UpdateFunc(ctx, id, payload)
}

func (m *MockPublisherStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2025, 0o3, 0o1, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// MockCoverStorage implements a fake CoverStorage.
type MockCoverStorage struct {
	UploadFunc func(ctx context.Context, name string, data []byte) (string, error)
}

func (m *MockCoverStorage) Upload(ctx context.Context, name string, data []byte) (string, error) {
	return m.UploadFunc(ctx, name, data)
}

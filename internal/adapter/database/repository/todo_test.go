package repository_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "todoapi/pkg/test"

	"todoapi/internal/adapter/database"
	"todoapi/internal/adapter/database/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/test/factory"
)

type TodoRepositoryTestSuite struct {
	suite.Suite
	DB       *database.DB
	TodoRepo port.TodoRepository
}

func (s *TodoRepositoryTestSuite) SetupTest() {
	RegisterTestingT(s.T())
	s.DB = InitTestDB()
	s.TodoRepo = repository.NewTodoRepository(s.DB, nil)
}

func (s *TodoRepositoryTestSuite) TearDownTest() {
	s.DB.Close()
}

func TestTodoRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TodoRepositoryTestSuite))
}

func (s *TodoRepositoryTestSuite) create(body string, completed bool) domain.Todo {
	todo, err := s.TodoRepo.Create(context.Background(), factory.NewStoredTodo(map[string]any{
		"Body":      body,
		"Completed": completed,
	}))
	s.Require().NoError(err)

	return todo
}

func (s *TodoRepositoryTestSuite) TestRepository_List_Empty() {
	todos, err := s.TodoRepo.List(context.Background())

	Expect(err).To(BeNil())
	Expect(todos).NotTo(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestRepository_List_OrderedByID() {
	first := s.create("first", false)
	second := s.create("second", true)
	third := s.create("third", false)

	todos, err := s.TodoRepo.List(context.Background())

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(3))
	Expect([]int64{todos[0].ID, todos[1].ID, todos[2].ID}).To(Equal([]int64{first.ID, second.ID, third.ID}))
}

func (s *TodoRepositoryTestSuite) TestRepository_List_ExcludesDeleted() {
	kept := s.create("kept", false)
	removed := s.create("removed", false)

	s.Require().NoError(s.TodoRepo.Delete(context.Background(), removed.ID))

	todos, err := s.TodoRepo.List(context.Background())

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(1))
	Expect(todos[0].ID).To(Equal(kept.ID))
}

func (s *TodoRepositoryTestSuite) TestRepository_Create_Success() {
	input := factory.NewStoredTodo(map[string]any{"Body": "buy milk", "Completed": false})

	todo, err := s.TodoRepo.Create(context.Background(), input)

	Expect(err).To(BeNil())
	Expect(todo.ID).To(BeNumerically(">", 0))
	Expect(todo.Body).To(Equal("buy milk"))
	Expect(todo.Completed).To(BeFalse())
	Expect(todo.CreatedAt).To(BeTemporally("==", input.CreatedAt))
	Expect(todo.UpdatedAt).To(BeTemporally("==", todo.CreatedAt))
}

func (s *TodoRepositoryTestSuite) TestRepository_GetByID_RoundTrip() {
	created := s.create("buy milk", true)

	found, err := s.TodoRepo.GetByID(context.Background(), created.ID)

	Expect(err).To(BeNil())
	assert.Equal(s.T(), created.ID, found.ID)
	assert.Equal(s.T(), created.Body, found.Body)
	assert.Equal(s.T(), created.Completed, found.Completed)
	assert.True(s.T(), created.CreatedAt.Equal(found.CreatedAt))
	assert.True(s.T(), created.UpdatedAt.Equal(found.UpdatedAt))
}

func (s *TodoRepositoryTestSuite) TestRepository_GetByID_NotFound() {
	_, err := s.TodoRepo.GetByID(context.Background(), 9999)

	Expect(domain.IsNotFound(err)).To(BeTrue())
	Expect(err.Error()).To(ContainSubstring("9999"))
}

func (s *TodoRepositoryTestSuite) TestRepository_Create_IDsNotReusedAfterDelete() {
	first := s.create("one", false)
	second := s.create("two", false)

	s.Require().NoError(s.TodoRepo.Delete(context.Background(), second.ID))

	third := s.create("three", false)

	Expect(third.ID).To(BeNumerically(">", second.ID))
	Expect(third.ID).NotTo(Equal(first.ID))
}

func (s *TodoRepositoryTestSuite) TestRepository_Update_PartialKeepsOtherFields() {
	created := s.create("a", false)
	completed := true

	updated, err := s.TodoRepo.Update(context.Background(), created.ID, domain.UpdateTodo{Completed: &completed})

	Expect(err).To(BeNil())
	Expect(updated.ID).To(Equal(created.ID))
	Expect(updated.Body).To(Equal("a"))
	Expect(updated.Completed).To(BeTrue())
	Expect(updated.CreatedAt).To(BeTemporally("==", created.CreatedAt))
	Expect(updated.UpdatedAt).To(BeTemporally(">=", created.UpdatedAt))
}

func (s *TodoRepositoryTestSuite) TestRepository_Update_BodyOnly() {
	created := s.create("old", true)
	body := "new"

	updated, err := s.TodoRepo.Update(context.Background(), created.ID, domain.UpdateTodo{Body: &body})

	Expect(err).To(BeNil())
	Expect(updated.Body).To(Equal("new"))
	Expect(updated.Completed).To(BeTrue())
}

func (s *TodoRepositoryTestSuite) TestRepository_Update_EmptyPatchRefreshesUpdatedAt() {
	created := s.create("same", false)

	updated, err := s.TodoRepo.Update(context.Background(), created.ID, domain.UpdateTodo{})

	Expect(err).To(BeNil())
	Expect(updated.Body).To(Equal("same"))
	Expect(updated.UpdatedAt).To(BeTemporally(">=", created.UpdatedAt))
}

func (s *TodoRepositoryTestSuite) TestRepository_Update_NotFound() {
	body := "ghost"

	_, err := s.TodoRepo.Update(context.Background(), 4242, domain.UpdateTodo{Body: &body})

	Expect(domain.IsNotFound(err)).To(BeTrue())
}

func (s *TodoRepositoryTestSuite) TestRepository_Delete_ThenReadIsNotFound() {
	created := s.create("gone", false)

	err := s.TodoRepo.Delete(context.Background(), created.ID)
	assert.NoError(s.T(), err)

	_, err = s.TodoRepo.GetByID(context.Background(), created.ID)

	Expect(domain.IsNotFound(err)).To(BeTrue())
}

func (s *TodoRepositoryTestSuite) TestRepository_Delete_MissingIsNoOp() {
	err := s.TodoRepo.Delete(context.Background(), 31337)

	Expect(err).To(BeNil())
}

func (s *TodoRepositoryTestSuite) TestRepository_ClosedPool_ReturnsStoreError() {
	s.DB.Close()

	_, err := s.TodoRepo.List(context.Background())

	var storeErr *domain.StoreError
	Expect(err).To(BeAssignableToTypeOf(storeErr))
	Expect(err.(*domain.StoreError).Op).To(Equal("todo.list"))
}

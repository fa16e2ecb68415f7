//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/auxesia/auxesia-server/internal/model"
	repo "github.com/auxesia/auxesia-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "auxesia_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/auxesia_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func makeUser(email string) model.User {
	return model.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     "tester",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func makeMeal(author string) model.Meal {
	return model.Meal{
		ID:           uuid.New(),
		Author:       author,
		Name:         "Ayam Goreng",
		Category:     "chicken",
		Area:         "Indonesia",
		Instructions: "Fry it.",
		Ingredients:  []model.Ingredient{{Name: "Paha ayam", Measure: "500 gram"}},
		Status:       model.MealStatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := makeUser("user@example.com")
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.False(t, saved.Verified)
	require.True(t, saved.Active)
	require.False(t, saved.Superuser)

	// duplicate email raises the taxonomy error, not a raw pg error
	_, err = ur.Create(ctx, makeUser("user@example.com"))
	require.ErrorIs(t, err, model.ErrEmailTaken)

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = ur.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	verified, err := ur.SetVerified(ctx, u.Email)
	require.NoError(t, err)
	require.True(t, verified.Verified)

	// idempotent: a second redeem converges to the same state
	verified, err = ur.SetVerified(ctx, u.Email)
	require.NoError(t, err)
	require.True(t, verified.Verified)

	_, err = ur.SetVerified(ctx, "missing@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	super := true
	inactive := false
	patched, err := ur.UpdatePrivileges(ctx, u.ID, model.PrivilegesPatch{Superuser: &super, Active: &inactive})
	require.NoError(t, err)
	require.True(t, patched.Superuser)
	require.False(t, patched.Active)

	users, err := ur.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(users), 1)
}

func TestMealRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	mr := repo.NewMealRepository(conn)

	m := makeMeal("author@example.com")
	saved, err := mr.Create(ctx, m)
	require.NoError(t, err)
	require.Equal(t, m.ID, saved.ID)
	require.Equal(t, m.Ingredients, saved.Ingredients)

	got, err := mr.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "author@example.com", got.Author)

	list, err := mr.List(ctx, model.MealFilter{Search: "ayam"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(list), 1)

	list, err = mr.List(ctx, model.MealFilter{Ingredient: "paha"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(list), 1)

	name := "Ayam Bakar"
	updated, err := mr.Update(ctx, m.ID, model.MealPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Ayam Bakar", updated.Name)
	require.Equal(t, m.Category, updated.Category)

	pending, err := mr.ListByStatus(ctx, model.MealStatusPending)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(pending), 1)

	approved, err := mr.UpdateStatus(ctx, m.ID, model.MealStatusApproved)
	require.NoError(t, err)
	require.Equal(t, model.MealStatusApproved, approved.Status)

	require.NoError(t, mr.Delete(ctx, m.ID))
	require.ErrorIs(t, mr.Delete(ctx, m.ID), model.ErrNotFound)
	_, err = mr.GetByID(ctx, m.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestFavoriteRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	mr := repo.NewMealRepository(conn)
	fr := repo.NewFavoriteRepository(conn)

	u, err := ur.Create(ctx, makeUser("fav@example.com"))
	require.NoError(t, err)
	m, err := mr.Create(ctx, makeMeal(u.Email))
	require.NoError(t, err)

	favorited, err := fr.Toggle(ctx, u.ID, m.ID)
	require.NoError(t, err)
	require.True(t, favorited)

	mealIDs, err := fr.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{m.ID}, mealIDs)

	// toggle is its own inverse
	favorited, err = fr.Toggle(ctx, u.ID, m.ID)
	require.NoError(t, err)
	require.False(t, favorited)

	mealIDs, err = fr.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, mealIDs)
}

package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"servisku/internal/domain/entities"
	mock_interfaces "servisku/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestTechnicianMatcher_Select(t *testing.T) {
	t.Run("no technician", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITechnicianServiceRepository(ctrl)
		m := NewTechnicianMatcher(repo, seeded())
		repo.EXPECT().ListActiveByCategory(gomock.Any(), "ac").Return(nil, nil)

		id, ok, err := m.Select(context.Background(), " ac ")
		if err != nil || ok || id != "" {
			t.Fatalf("expected no match, got id=%q ok=%v err=%v", id, ok, err)
		}
	})

	t.Run("inactive and foreign rows are ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITechnicianServiceRepository(ctrl)
		m := NewTechnicianMatcher(repo, seeded())
		repo.EXPECT().ListActiveByCategory(gomock.Any(), "ac").Return([]entities.TechnicianService{
			{ID: "1", TechnicianID: "t-off", CategorySlug: "ac", Active: false},
			{ID: "2", TechnicianID: "t-fridge", CategorySlug: "fridge", Active: true},
			{ID: "3", TechnicianID: "t-on", CategorySlug: "ac", Active: true},
		}, nil)

		id, ok, err := m.Select(context.Background(), "ac")
		if err != nil || !ok || id != "t-on" {
			t.Fatalf("expected t-on, got id=%q ok=%v err=%v", id, ok, err)
		}
	})

	t.Run("pick is always a candidate and reproducible", func(t *testing.T) {
		rows := []entities.TechnicianService{
			{ID: "1", TechnicianID: "t3", CategorySlug: "ac", Active: true},
			{ID: "2", TechnicianID: "t1", CategorySlug: "ac", Active: true},
			{ID: "3", TechnicianID: "t2", CategorySlug: "ac", Active: true},
			{ID: "4", TechnicianID: "t1", CategorySlug: "ac", Active: true},
		}
		valid := map[string]bool{"t1": true, "t2": true, "t3": true}

		run := func() []string {
			ctrl := gomock.NewController(t)
			repo := mock_interfaces.NewMockITechnicianServiceRepository(ctrl)
			repo.EXPECT().ListActiveByCategory(gomock.Any(), "ac").Return(rows, nil).AnyTimes()
			m := NewTechnicianMatcher(repo, seeded())
			var picks []string
			for i := 0; i < 20; i++ {
				id, ok, err := m.Select(context.Background(), "ac")
				if err != nil || !ok || !valid[id] {
					t.Fatalf("unexpected pick id=%q ok=%v err=%v", id, ok, err)
				}
				picks = append(picks, id)
			}
			return picks
		}

		first, second := run(), run()
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("same seed must give same picks: %v vs %v", first, second)
			}
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITechnicianServiceRepository(ctrl)
		m := NewTechnicianMatcher(repo, nil)
		repo.EXPECT().ListActiveByCategory(gomock.Any(), "ac").Return(nil, errors.New("db"))

		_, ok, err := m.Select(context.Background(), "ac")
		if ok || err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got ok=%v err=%v", ok, err)
		}
	})
}

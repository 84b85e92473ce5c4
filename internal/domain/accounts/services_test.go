package accounts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/accounts"
	"github.com/arcana-cards/arcana/internal/domain/accounts/mock"
	"github.com/arcana-cards/arcana/internal/domain/collection"
	collmock "github.com/arcana-cards/arcana/internal/domain/collection/mock"
	"github.com/arcana-cards/arcana/internal/domain/packs"
	packmock "github.com/arcana-cards/arcana/internal/domain/packs/mock"
	"github.com/arcana-cards/arcana/internal/domain/rarity"
	"github.com/arcana-cards/arcana/internal/domain/transactor"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	users       *mock.MockUserStore
	uploads     *mock.MockUploadStore
	objects     *mock.MockObjectStore
	avatars     *mock.MockAvatarGenerator
	collections *collmock.MockStore
	statuses    *packmock.MockStore
	service     *accounts.Service
}

type staticRarities struct {
	table *rarity.Table
}

func (r staticRarities) RarityTable(context.Context) (*rarity.Table, error) {
	return r.table, nil
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		users:       mock.NewMockUserStore(ctrl),
		uploads:     mock.NewMockUploadStore(ctrl),
		objects:     mock.NewMockObjectStore(ctrl),
		avatars:     mock.NewMockAvatarGenerator(ctrl),
		collections: collmock.NewMockStore(ctrl),
		statuses:    packmock.NewMockStore(ctrl),
	}

	table, err := rarity.NewTable([]rarity.Rarity{{ID: 1, Title: "Common", Weight: 0.6}})
	if err != nil {
		t.Fatal(err)
	}

	tx := transactor.Passthrough{}
	now := time.Date(2024, 11, 4, 8, 0, 0, 0, time.UTC)
	f.service = accounts.NewService(accounts.Deps{
		Users:       f.users,
		Uploads:     f.uploads,
		Objects:     f.objects,
		Collections: collection.NewLedger(f.collections, tx, nil),
		Packs: packs.NewService(f.statuses, tx, packs.NewClock(packs.DefaultInterval, packs.DefaultMaxPacks)).
			WithNow(func() time.Time { return now }),
		Rarities: staticRarities{table: table},
		Avatars:  f.avatars,
		Tx:       tx,
	})
	return f
}

func TestService_OnUserCreatedIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coll := &collection.Collection{ID: 11, UserID: "u1"}

	gomock.InOrder(
		f.users.EXPECT().Create(gomock.Any(), "u1").Return(true, nil),
		f.collections.EXPECT().Create(gomock.Any(), &collection.Collection{UserID: "u1"}).Return(true, nil),
		f.collections.EXPECT().GetByUserID(gomock.Any(), "u1").Return(coll, nil),
		f.statuses.EXPECT().Create(gomock.Any(), gomock.Any()).Return(true, nil),
		f.avatars.EXPECT().GenerateAvatar(gomock.Any(), "u1").Return(nil),

		// second registration finds every row already present
		f.users.EXPECT().Create(gomock.Any(), "u1").Return(false, nil),
		f.collections.EXPECT().Create(gomock.Any(), &collection.Collection{UserID: "u1"}).Return(false, nil),
		f.collections.EXPECT().GetByUserID(gomock.Any(), "u1").Return(coll, nil),
		f.statuses.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, nil),
		f.avatars.EXPECT().GenerateAvatar(gomock.Any(), "u1").Return(nil),
	)

	first, err := f.service.OnUserCreated(ctx, "u1")
	if err != nil {
		t.Fatalf("OnUserCreated() error = %v", err)
	}
	second, err := f.service.OnUserCreated(ctx, "u1")
	if err != nil {
		t.Fatalf("second OnUserCreated() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("OnUserCreated() returned collections %d and %d, want the same", first.ID, second.ID)
	}
}

func TestService_OnUserCreatedSeedsFullPacks(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Create(gomock.Any(), "u1").Return(true, nil)
	f.collections.EXPECT().Create(gomock.Any(), gomock.Any()).Return(true, nil)
	f.collections.EXPECT().GetByUserID(gomock.Any(), "u1").Return(&collection.Collection{ID: 1, UserID: "u1"}, nil)
	f.statuses.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *packs.Status) (bool, error) {
			if s.UserID != "u1" || s.PacksAvailable != packs.DefaultMaxPacks {
				t.Errorf("initial status = %+v", s)
			}
			return true, nil
		})
	f.avatars.EXPECT().GenerateAvatar(gomock.Any(), "u1").Return(errors.New("avatar service down"))

	if _, err := f.service.OnUserCreated(context.Background(), "u1"); err != nil {
		t.Fatalf("OnUserCreated() error = %v, avatar failures must not fail registration", err)
	}
}

func TestService_OnUserCreatedStopsOnFailure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")

	f.users.EXPECT().Create(gomock.Any(), "u1").Return(true, nil)
	f.collections.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, boom)

	if _, err := f.service.OnUserCreated(context.Background(), "u1"); !errors.Is(err, boom) {
		t.Fatalf("OnUserCreated() error = %v, want %v", err, boom)
	}
}

func TestService_ReplaceUserUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	upload := accounts.Upload{
		Title:       "Card 2",
		Description: "Second card",
		RarityID:    1,
		ContentType: "image/png",
		Body:        []byte{0x89, 'P', 'N', 'G'},
	}

	gomock.InOrder(
		f.objects.EXPECT().Put(gomock.Any(), "u1", "image/png", upload.Body).Return("uploads/u1/2", nil),
		f.users.EXPECT().Get(gomock.Any(), "u1").Return(&accounts.User{ID: "u1"}, nil),
		f.uploads.EXPECT().ListByUser(gomock.Any(), "u1").
			Return([]accounts.UserCard{{ID: 1, UserID: "u1", Title: "Card 1", ImageRef: "uploads/u1/1"}}, nil),
		f.uploads.EXPECT().DeleteByUser(gomock.Any(), "u1").Return(int64(1), nil),
		f.uploads.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *accounts.UserCard) error {
				c.ID = 2
				return nil
			}),
		f.objects.EXPECT().Delete(gomock.Any(), "uploads/u1/1").Return(nil),
	)

	got, err := f.service.ReplaceUserUpload(ctx, "u1", upload)
	if err != nil {
		t.Fatalf("ReplaceUserUpload() error = %v", err)
	}
	if got.ID != 2 || got.Title != "Card 2" || got.ImageRef != "uploads/u1/2" {
		t.Errorf("ReplaceUserUpload() = %+v", got)
	}
}

func TestService_ReplaceUserUploadRejects(t *testing.T) {
	tests := []struct {
		name    string
		upload  accounts.Upload
		wantErr error
	}{
		{
			name:    "Empty body",
			upload:  accounts.Upload{Title: "x", RarityID: 1},
			wantErr: accounts.ErrEmptyUpload,
		},
		{
			name:    "Unknown rarity",
			upload:  accounts.Upload{Title: "x", RarityID: 9, Body: []byte("img")},
			wantErr: rarity.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if _, err := f.service.ReplaceUserUpload(context.Background(), "u1", tt.upload); !errors.Is(err, tt.wantErr) {
				t.Errorf("ReplaceUserUpload() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_ReplaceUserUploadUnknownUserCleansUp(t *testing.T) {
	f := newFixture(t)
	body := []byte("img")

	f.objects.EXPECT().Put(gomock.Any(), "ghost", "", body).Return("uploads/ghost/1", nil)
	f.users.EXPECT().Get(gomock.Any(), "ghost").Return(nil, accounts.ErrUserNotFound)
	f.objects.EXPECT().Delete(gomock.Any(), "uploads/ghost/1").Return(nil)

	_, err := f.service.ReplaceUserUpload(context.Background(), "ghost", accounts.Upload{RarityID: 1, Body: body})
	if !errors.Is(err, accounts.ErrUserNotFound) {
		t.Fatalf("ReplaceUserUpload() error = %v, want ErrUserNotFound", err)
	}
}

func TestService_DeleteUser(t *testing.T) {
	f := newFixture(t)

	f.uploads.EXPECT().ListByUser(gomock.Any(), "u1").
		Return([]accounts.UserCard{{ID: 1, ImageRef: "uploads/u1/1"}}, nil)
	f.users.EXPECT().Delete(gomock.Any(), "u1").Return(true, nil)
	f.objects.EXPECT().Delete(gomock.Any(), "uploads/u1/1").Return(errors.New("bucket unavailable"))

	if err := f.service.DeleteUser(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
}

func TestService_DeleteUnknownUser(t *testing.T) {
	f := newFixture(t)

	f.uploads.EXPECT().ListByUser(gomock.Any(), "ghost").Return(nil, nil)
	f.users.EXPECT().Delete(gomock.Any(), "ghost").Return(false, nil)

	if err := f.service.DeleteUser(context.Background(), "ghost"); !errors.Is(err, accounts.ErrUserNotFound) {
		t.Fatalf("DeleteUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestService_EnsureCollection(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Get(gomock.Any(), "u1").Return(&accounts.User{ID: "u1"}, nil)
	f.collections.EXPECT().Create(gomock.Any(), &collection.Collection{UserID: "u1"}).Return(true, nil)
	f.collections.EXPECT().GetByUserID(gomock.Any(), "u1").Return(&collection.Collection{ID: 4, UserID: "u1"}, nil)

	got, err := f.service.EnsureCollection(context.Background(), "u1")
	if err != nil {
		t.Fatalf("EnsureCollection() error = %v", err)
	}
	if got.ID != 4 {
		t.Errorf("EnsureCollection() = %+v", got)
	}
}

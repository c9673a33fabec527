package usecase

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sort"
	"strings"
	"testing"
	"time"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/data/session"
	"classifieds-market/pkg/database"
	"classifieds-market/pkg/mailer"
	"classifieds-market/pkg/storage"
	"classifieds-market/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== HARNESS ====================

type harness struct {
	svc       *Service
	users     *fakeUsers
	items     *fakeItems
	images    *fakeItemImages
	addresses *fakeAddresses
	saved     *fakeSaved
	purchases *fakePurchases
	store     *session.MemoryStore
	files     *storage.LocalStore
	mail      *fakeMailer
	clock     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	files, err := storage.NewLocalStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	h := &harness{
		users:     &fakeUsers{rows: map[int64]*entity.User{}},
		items:     &fakeItems{rows: map[int64]*entity.Item{}},
		images:    &fakeItemImages{rows: map[imageKey]*entity.ItemImage{}},
		addresses: &fakeAddresses{},
		saved:     &fakeSaved{rows: map[[2]int64]bool{}},
		store:     session.NewMemoryStore(),
		files:     files,
		mail:      &fakeMailer{},
		clock:     time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	h.items.images = h.images
	h.purchases = &fakePurchases{rows: map[[2]int64]*entity.Purchase{}, items: h.items}

	repo := &repository.Repository{
		User:      h.users,
		Category:  &fakeCategories{names: database.Categories},
		Item:      h.items,
		ItemImage: h.images,
		Address:   h.addresses,
		SavedItem: h.saved,
		Purchase:  h.purchases,
	}
	config := &utils.Config{
		Email:   utils.EmailConfig{CodeTTLSeconds: 300},
		Storage: utils.StorageConfig{MaxImageBytes: 5 << 20},
	}

	h.svc = NewService(repo, h.store, files, h.mail, config, zap.NewNop())

	now := func() time.Time { return h.clock }
	h.svc.Auth.(*authService).now = now
	h.svc.User.(*userService).now = now
	h.svc.Item.(*itemService).now = now
	h.svc.Purchase.(*purchaseService).now = now

	return h
}

// addUser inserts a user whose password is "secret123".
func (h *harness) addUser(t *testing.T, userID string, broker bool) *entity.User {
	t.Helper()

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	u := &entity.User{
		UserID:       userID,
		PasswordHash: hash,
		Name:         strings.ToUpper(userID),
		Email:        userID + "@example.com",
		Phone:        "01012345678",
		IDNum:        "9001011234567",
		IsBroker:     broker,
	}
	require.NoError(t, h.users.Create(context.Background(), u))
	return u
}

func (h *harness) addItem(t *testing.T, owner *entity.User, name string) *entity.Item {
	t.Helper()

	item := &entity.Item{
		UserSeq:     owner.Seq,
		Name:        name,
		Cnt:         2,
		Price:       10000,
		Description: "desc",
		CategorySeq: 1,
	}
	require.NoError(t, h.items.Create(context.Background(), item))
	return item
}

func (h *harness) login(t *testing.T, userID string) {
	t.Helper()
	require.NoError(t, h.store.Set(context.Background(), session.LoginKey(userID), "1", 0))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// ==================== USERS ====================

type fakeUsers struct {
	rows map[int64]*entity.User
	next int64
}

func (f *fakeUsers) Create(ctx context.Context, user *entity.User) error {
	for _, u := range f.rows {
		if u.UserID == user.UserID || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	f.next++
	user.Seq = f.next
	user.SignupDate = time.Now()
	cp := *user
	f.rows[user.Seq] = &cp
	return nil
}

func (f *fakeUsers) find(match func(*entity.User) bool) *entity.User {
	for _, u := range f.rows {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (f *fakeUsers) FindBySeq(ctx context.Context, seq int64) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Seq == seq }), nil
}

func (f *fakeUsers) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.UserID == userID }), nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (f *fakeUsers) UpdateInfo(ctx context.Context, seq int64, patch entity.UserPatch) error {
	u, ok := f.rows[seq]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Email != nil {
		for _, other := range f.rows {
			if other.Seq != seq && other.Email == *patch.Email {
				return repository.ErrDuplicate
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, seq int64, hash string) error {
	u, ok := f.rows[seq]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	u.PasswordUpdateDate = time.Now()
	return nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, seq int64, profile *string) error {
	u, ok := f.rows[seq]
	if !ok {
		return repository.ErrNotFound
	}
	u.Profile = profile
	return nil
}

func (f *fakeUsers) TouchLastLogin(ctx context.Context, seq int64) error {
	if u, ok := f.rows[seq]; ok {
		u.LastLogin = time.Now()
	}
	return nil
}

func (f *fakeUsers) TouchLastLogout(ctx context.Context, seq int64) error {
	if u, ok := f.rows[seq]; ok {
		now := time.Now()
		u.LastLogout = &now
	}
	return nil
}

func (f *fakeUsers) Delete(ctx context.Context, seq int64) error {
	if _, ok := f.rows[seq]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, seq)
	return nil
}

// ==================== CATEGORIES ====================

type fakeCategories struct {
	names []string
}

func (f *fakeCategories) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	for i, n := range f.names {
		if n == name {
			return &entity.Category{Seq: int64(i + 1), Name: n}, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) FindAll(ctx context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(f.names))
	for i, n := range f.names {
		out = append(out, &entity.Category{Seq: int64(i + 1), Name: n})
	}
	return out, nil
}

// ==================== ITEMS ====================

type fakeItems struct {
	rows      map[int64]*entity.Item
	next      int64
	calls     int // listing queries
	images    *fakeItemImages
	deleteErr error
}

func (f *fakeItems) Create(ctx context.Context, item *entity.Item) error {
	f.next++
	item.Seq = f.next
	item.CreatedAt = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	cp := *item
	f.rows[item.Seq] = &cp
	return nil
}

func (f *fakeItems) FindBySeq(ctx context.Context, seq int64) (*entity.Item, error) {
	item, ok := f.rows[seq]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItems) FindDetail(ctx context.Context, seq int64) (*entity.ItemDetail, error) {
	item, ok := f.rows[seq]
	if !ok {
		return nil, nil
	}
	return &entity.ItemDetail{Item: *item, OwnerName: "owner", CategoryName: "디지털 기기"}, nil
}

func (f *fakeItems) IncrementViews(ctx context.Context, seq int64) error {
	item, ok := f.rows[seq]
	if !ok {
		return repository.ErrNotFound
	}
	item.Views++
	return nil
}

func (f *fakeItems) matching(value string) []*entity.Item {
	var out []*entity.Item
	for _, item := range f.rows {
		if !item.PurchaseType && strings.Contains(strings.ToLower(item.Name), strings.ToLower(value)) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func page[T any](rows []T, start, count int) []T {
	if start >= len(rows) {
		return nil
	}
	end := min(start+count, len(rows))
	return rows[start:end]
}

func summary(item *entity.Item) *entity.ItemSummary {
	return &entity.ItemSummary{Seq: item.Seq, Name: item.Name, Price: item.Price, CreatedAt: item.CreatedAt}
}

func (f *fakeItems) SearchNames(ctx context.Context, value string, start, count int) ([]string, error) {
	f.calls++
	seen := map[string]bool{}
	var names []string
	for _, item := range f.matching(value) {
		if !seen[item.Name] {
			seen[item.Name] = true
			names = append(names, item.Name)
		}
	}
	return page(names, start, count), nil
}

func (f *fakeItems) Search(ctx context.Context, value string, start, count int) ([]*entity.ItemSummary, error) {
	f.calls++
	var out []*entity.ItemSummary
	for _, item := range page(f.matching(value), start, count) {
		out = append(out, summary(item))
	}
	return out, nil
}

func (f *fakeItems) Recommend(ctx context.Context, start, count int) ([]*entity.ItemSummary, error) {
	f.calls++
	all := f.matching("")
	sort.SliceStable(all, func(i, j int) bool { return all[i].Views > all[j].Views })
	var out []*entity.ItemSummary
	for _, item := range page(all, start, count) {
		out = append(out, summary(item))
	}
	return out, nil
}

func (f *fakeItems) Update(ctx context.Context, seq int64, patch entity.ItemPatch) error {
	item, ok := f.rows[seq]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Cnt != nil {
		item.Cnt = *patch.Cnt
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	return nil
}

func (f *fakeItems) Delete(ctx context.Context, seq int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.rows[seq]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, seq)
	if f.images != nil {
		f.images.DeleteByItem(ctx, seq)
	}
	return nil
}

// ==================== ITEM IMAGES ====================

type imageKey struct {
	item  int64
	index int
}

type fakeItemImages struct {
	rows map[imageKey]*entity.ItemImage
}

func (f *fakeItemImages) Create(ctx context.Context, img *entity.ItemImage) error {
	key := imageKey{img.ItemSeq, img.Index}
	if _, ok := f.rows[key]; ok {
		return repository.ErrDuplicate
	}
	cp := *img
	f.rows[key] = &cp
	return nil
}

func (f *fakeItemImages) Find(ctx context.Context, itemSeq int64, index int) (*entity.ItemImage, error) {
	img, ok := f.rows[imageKey{itemSeq, index}]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

func (f *fakeItemImages) ListByItem(ctx context.Context, itemSeq int64) ([]*entity.ItemImage, error) {
	var out []*entity.ItemImage
	for _, img := range f.rows {
		if img.ItemSeq == itemSeq {
			cp := *img
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func (f *fakeItemImages) Delete(ctx context.Context, itemSeq int64, index int) (*entity.ItemImage, error) {
	key := imageKey{itemSeq, index}
	img, ok := f.rows[key]
	if !ok {
		return nil, nil
	}
	delete(f.rows, key)
	return img, nil
}

func (f *fakeItemImages) DeleteByItem(ctx context.Context, itemSeq int64) ([]*entity.ItemImage, error) {
	out, _ := f.ListByItem(ctx, itemSeq)
	for _, img := range out {
		delete(f.rows, imageKey{img.ItemSeq, img.Index})
	}
	return out, nil
}

// ==================== ADDRESSES ====================

type fakeAddresses struct {
	rows []*entity.Address
}

func (f *fakeAddresses) Create(ctx context.Context, address *entity.Address) error {
	hasDefault := false
	for _, a := range f.rows {
		if a.UserSeq != address.UserSeq {
			continue
		}
		if a.RoadFullAddr == address.RoadFullAddr {
			return repository.ErrDuplicate
		}
		hasDefault = hasDefault || a.IsDefault
	}
	address.IsDefault = !hasDefault
	cp := *address
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeAddresses) List(ctx context.Context, userSeq int64, defaultOnly bool) ([]*entity.Address, error) {
	var out []*entity.Address
	for _, a := range f.rows {
		if a.UserSeq == userSeq && (!defaultOnly || a.IsDefault) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAddresses) Delete(ctx context.Context, userSeq int64, roadFullAddr string) error {
	for i, a := range f.rows {
		if a.UserSeq == userSeq && a.RoadFullAddr == roadFullAddr {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAddresses) SetDefault(ctx context.Context, userSeq int64, roadFullAddr string) error {
	found := false
	for _, a := range f.rows {
		if a.UserSeq == userSeq && a.RoadFullAddr == roadFullAddr {
			found = true
		}
	}
	if !found {
		return repository.ErrNotFound
	}
	for _, a := range f.rows {
		if a.UserSeq == userSeq {
			a.IsDefault = a.RoadFullAddr == roadFullAddr
		}
	}
	return nil
}

// ==================== SAVED ITEMS ====================

type fakeSaved struct {
	rows map[[2]int64]bool
}

func (f *fakeSaved) Toggle(ctx context.Context, userSeq, itemSeq int64) (bool, error) {
	key := [2]int64{userSeq, itemSeq}
	if f.rows[key] {
		delete(f.rows, key)
		return false, nil
	}
	f.rows[key] = true
	return true, nil
}

func (f *fakeSaved) Exists(ctx context.Context, userSeq, itemSeq int64) (bool, error) {
	return f.rows[[2]int64{userSeq, itemSeq}], nil
}

func (f *fakeSaved) ListSummaries(ctx context.Context, userSeq int64) ([]*entity.ItemSummary, error) {
	var out []*entity.ItemSummary
	for key := range f.rows {
		if key[0] == userSeq {
			out = append(out, &entity.ItemSummary{Seq: key[1]})
		}
	}
	return out, nil
}

// ==================== PURCHASES ====================

type fakePurchases struct {
	rows  map[[2]int64]*entity.Purchase
	items *fakeItems
}

func (f *fakePurchases) Request(ctx context.Context, buyerSeq, itemSeq int64) error {
	item, ok := f.items.rows[itemSeq]
	if !ok || item.PurchaseType {
		return repository.ErrItemUnavailable
	}
	key := [2]int64{buyerSeq, itemSeq}
	if _, ok := f.rows[key]; ok {
		return repository.ErrDuplicate
	}
	item.PurchaseType = true
	now := time.Now()
	f.rows[key] = &entity.Purchase{UserSeq: buyerSeq, ItemSeq: itemSeq, StartAt: now}
	return nil
}

func (f *fakePurchases) Find(ctx context.Context, buyerSeq, itemSeq int64) (*entity.Purchase, error) {
	p, ok := f.rows[[2]int64{buyerSeq, itemSeq}]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePurchases) ListInProgress(ctx context.Context, buyerSeq int64) ([]*entity.ItemSummary, error) {
	var out []*entity.ItemSummary
	for key, p := range f.rows {
		if key[0] == buyerSeq && !p.Complete {
			out = append(out, summary(f.items.rows[key[1]]))
		}
	}
	return out, nil
}

func (f *fakePurchases) Complete(ctx context.Context, buyerSeq, itemSeq int64) error {
	p, ok := f.rows[[2]int64{buyerSeq, itemSeq}]
	if !ok || p.Complete {
		return repository.ErrNotFound
	}
	now := time.Now()
	p.Complete = true
	p.EndAt = &now

	item := f.items.rows[itemSeq]
	item.Cnt = max(item.Cnt-1, 0)
	item.PurchaseType = item.Cnt == 0
	return nil
}

// ==================== MAILER ====================

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/domain/booking"
	"github.com/gearshare/service-rental/internal/domain/item"
	"github.com/gearshare/service-rental/internal/domain/request"
	"github.com/gearshare/service-rental/internal/domain/user"
)

// In-memory repository fakes. They mirror the ordering and filtering contracts
// of the GORM implementations so service tests exercise real query semantics.

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("email " + u.Email() + " is already registered")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*user.User, error) {
	list := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt().Before(list[j].CreatedAt()) })
	return list, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("user", u.ID().String())
	}
	for id, existing := range r.users {
		if id != u.ID() && existing.Email() == u.Email() {
			return domain.NewConflictError("email " + u.Email() + " is already registered")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

type fakeItemRepo struct {
	items []*item.Item
}

func newFakeItemRepo() *fakeItemRepo { return &fakeItemRepo{} }

func (r *fakeItemRepo) Create(_ context.Context, it *item.Item) error {
	r.items = append(r.items, it)
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	for _, it := range r.items {
		if it.ID() == id {
			return it, nil
		}
	}
	return nil, domain.NewNotFoundError("item", id.String())
}

func (r *fakeItemRepo) Update(_ context.Context, it *item.Item) error {
	for i, existing := range r.items {
		if existing.ID() == it.ID() {
			r.items[i] = it
			return nil
		}
	}
	return domain.NewNotFoundError("item", it.ID().String())
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, it := range r.items {
		if it.ID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*item.Item, error) {
	var list []*item.Item
	for _, it := range r.items {
		if it.IsOwnedBy(ownerID) {
			list = append(list, it)
		}
	}
	return list, nil
}

func (r *fakeItemRepo) ListByOwnerPage(ctx context.Context, ownerID uuid.UUID, page, size int) ([]*item.Item, error) {
	list, _ := r.ListByOwner(ctx, ownerID)
	return slicePage(list, page, size), nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string) ([]*item.Item, error) {
	needle := strings.ToLower(text)
	var list []*item.Item
	for _, it := range r.items {
		if !it.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name()), needle) ||
			strings.Contains(strings.ToLower(it.Description()), needle) {
			list = append(list, it)
		}
	}
	return list, nil
}

func (r *fakeItemRepo) SearchPage(ctx context.Context, text string, page, size int) ([]*item.Item, error) {
	list, _ := r.Search(ctx, text)
	return slicePage(list, page, size), nil
}

func (r *fakeItemRepo) ListByRequest(_ context.Context, requestID uuid.UUID) ([]*item.Item, error) {
	var list []*item.Item
	for _, it := range r.items {
		if it.RequestID() != nil && *it.RequestID() == requestID {
			list = append(list, it)
		}
	}
	return list, nil
}

type fakeBookingRepo struct {
	bookings []*booking.Booking
	items    *fakeItemRepo
}

func newFakeBookingRepo(items *fakeItemRepo) *fakeBookingRepo {
	return &fakeBookingRepo{items: items}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	for _, b := range r.bookings {
		if b.ID() == id {
			// Return a detached copy, like the GORM repository does when it
			// reconstructs from rows; callers mutating the result must not
			// affect the stored booking.
			return booking.Reconstruct(
				b.ID(), b.ItemID(), b.BookerID(), b.Start(), b.End(), b.Status(), b.CreatedAt(), b.UpdatedAt()), nil
		}
	}
	return nil, domain.NewNotFoundError("booking", id.String())
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.BookingStatus, updatedAt time.Time) error {
	for i, b := range r.bookings {
		if b.ID() != id {
			continue
		}
		if b.Status() != from {
			return domain.NewConflictError("booking " + id.String() + " was decided concurrently")
		}
		r.bookings[i] = booking.Reconstruct(
			b.ID(), b.ItemID(), b.BookerID(), b.Start(), b.End(), to, b.CreatedAt(), updatedAt)
		return nil
	}
	return domain.NewConflictError("booking " + id.String() + " was decided concurrently")
}

func (r *fakeBookingRepo) ownedBy(b *booking.Booking, ownerID uuid.UUID) bool {
	it, err := r.items.FindByID(context.Background(), b.ItemID())
	return err == nil && it.IsOwnedBy(ownerID)
}

func (r *fakeBookingRepo) List(_ context.Context, f booking.ListFilter) ([]*booking.Booking, error) {
	var list []*booking.Booking
	for _, b := range r.bookings {
		switch f.Role {
		case booking.RoleOwner:
			if !r.ownedBy(b, f.SubjectID) {
				continue
			}
		default:
			if !b.IsBookedBy(f.SubjectID) {
				continue
			}
		}
		if f.State.Matches(b, f.Now) {
			list = append(list, b)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Start().After(list[j].Start()) })
	return list, nil
}

func (r *fakeBookingRepo) ListPage(ctx context.Context, f booking.ListFilter, page, size int) ([]*booking.Booking, error) {
	list, err := r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return slicePage(list, page, size), nil
}

func (r *fakeBookingRepo) approvedOnItem(itemID, ownerID uuid.UUID) []*booking.Booking {
	var list []*booking.Booking
	for _, b := range r.bookings {
		if b.ItemID() == itemID && b.Status() == booking.StatusApproved && r.ownedBy(b, ownerID) {
			list = append(list, b)
		}
	}
	return list
}

func (r *fakeBookingRepo) LastFinished(_ context.Context, itemID, ownerID uuid.UUID, now time.Time) (*booking.Booking, error) {
	var best *booking.Booking
	for _, b := range r.approvedOnItem(itemID, ownerID) {
		if b.End().After(now) {
			continue
		}
		if best == nil || b.End().After(best.End()) {
			best = b
		}
	}
	return best, nil
}

func (r *fakeBookingRepo) CurrentlyRunning(_ context.Context, itemID, ownerID uuid.UUID, now time.Time) (*booking.Booking, error) {
	for _, b := range r.approvedOnItem(itemID, ownerID) {
		if b.Spans(now) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) NextUpcoming(_ context.Context, itemID, ownerID uuid.UUID, now time.Time) (*booking.Booking, error) {
	var best *booking.Booking
	for _, b := range r.approvedOnItem(itemID, ownerID) {
		if !b.Start().After(now) {
			continue
		}
		if best == nil || b.Start().Before(best.Start()) {
			best = b
		}
	}
	return best, nil
}

func (r *fakeBookingRepo) HasApprovedStarted(_ context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.BookerID() == bookerID && b.ItemID() == itemID &&
			b.Status() == booking.StatusApproved && b.Start().Before(now) {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	comments []*item.Comment
}

func newFakeCommentRepo() *fakeCommentRepo { return &fakeCommentRepo{} }

func (r *fakeCommentRepo) Create(_ context.Context, c *item.Comment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeCommentRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]*item.Comment, error) {
	var list []*item.Comment
	for _, c := range r.comments {
		if c.ItemID() == itemID {
			list = append(list, c)
		}
	}
	return list, nil
}

type fakeRequestRepo struct {
	requests []*request.ItemRequest
}

func newFakeRequestRepo() *fakeRequestRepo { return &fakeRequestRepo{} }

func (r *fakeRequestRepo) Create(_ context.Context, req *request.ItemRequest) error {
	r.requests = append(r.requests, req)
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*request.ItemRequest, error) {
	for _, req := range r.requests {
		if req.ID() == id {
			return req, nil
		}
	}
	return nil, domain.NewNotFoundError("item request", id.String())
}

func (r *fakeRequestRepo) ListByRequester(_ context.Context, requesterID uuid.UUID) ([]*request.ItemRequest, error) {
	return r.filtered(func(req *request.ItemRequest) bool { return req.RequesterID() == requesterID }), nil
}

func (r *fakeRequestRepo) ListByOthers(_ context.Context, requesterID uuid.UUID) ([]*request.ItemRequest, error) {
	return r.filtered(func(req *request.ItemRequest) bool { return req.RequesterID() != requesterID }), nil
}

func (r *fakeRequestRepo) ListByOthersPage(ctx context.Context, requesterID uuid.UUID, page, size int) ([]*request.ItemRequest, error) {
	list, _ := r.ListByOthers(ctx, requesterID)
	return slicePage(list, page, size), nil
}

func (r *fakeRequestRepo) filtered(keep func(*request.ItemRequest) bool) []*request.ItemRequest {
	var list []*request.ItemRequest
	for _, req := range r.requests {
		if keep(req) {
			list = append(list, req)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt().After(list[j].CreatedAt()) })
	return list
}

func slicePage[T any](list []T, page, size int) []T {
	lo := page * size
	if lo >= len(list) {
		return []T{}
	}
	hi := lo + size
	if hi > len(list) {
		hi = len(list)
	}
	return list[lo:hi]
}

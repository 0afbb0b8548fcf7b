package booking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"flynext/database"
	bookingRepo "flynext/database/repository/booking"
	hotelRepo "flynext/database/repository/hotel"
	"flynext/models"
	"flynext/services/payment"
	"flynext/services/user"

	"go.uber.org/zap"
)

type memBookings struct {
	bookingRepo.BookingRepository
	mu   sync.Mutex
	byID map[string]models.Booking
}

func newMemBookings() *memBookings {
	return &memBookings{byID: map[string]models.Booking{}}
}

func (m *memBookings) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[b.ID] = *b
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (m *memBookings) Replace(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[b.ID]; !ok {
		return database.ErrNotFound
	}
	m.byID[b.ID] = *b
	return nil
}

func (m *memBookings) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.byID {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) ListOverlapping(_ context.Context, roomIDs []string, from, to time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range roomIDs {
		wanted[id] = true
	}
	var out []models.Booking
	for _, b := range m.byID {
		if !wanted[b.RoomID] || b.BookStatus == models.BookingCancelled || b.CheckIn == nil || b.CheckOut == nil {
			continue
		}
		if b.CheckIn.Before(to) && b.CheckOut.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) ListForOwner(_ context.Context, q bookingRepo.OwnerBookingQuery) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hotels := map[string]bool{}
	for _, id := range q.HotelIDs {
		hotels[id] = true
	}
	var out []models.Booking
	for _, b := range m.byID {
		if !hotels[b.HotelID] {
			continue
		}
		if q.From != nil && (b.CheckIn == nil || b.CheckIn.Before(*q.From)) {
			continue
		}
		if q.To != nil && (b.CheckOut == nil || b.CheckOut.After(*q.To)) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type memPayments struct {
	bookingRepo.PaymentRepository
	mu        sync.Mutex
	byBooking map[string]models.Payment
}

func newMemPayments() *memPayments {
	return &memPayments{byBooking: map[string]models.Payment{}}
}

func (m *memPayments) Create(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byBooking[p.BookingID] = *p
	return nil
}

func (m *memPayments) GetByBookingID(_ context.Context, bookingID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byBooking[bookingID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (m *memPayments) ListByBookingIDs(_ context.Context, ids []string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, id := range ids {
		if p, ok := m.byBooking[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type memHotels struct {
	hotelRepo.HotelRepository
	byID map[string]models.Hotel
}

func (m *memHotels) GetByID(_ context.Context, id string) (*models.Hotel, error) {
	h, ok := m.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &h, nil
}

func (m *memHotels) GetByIDs(_ context.Context, ids []string) ([]models.Hotel, error) {
	var out []models.Hotel
	for _, id := range ids {
		if h, ok := m.byID[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

type memRooms struct {
	hotelRepo.RoomRepository
	byID map[string]models.Room
}

func (m *memRooms) GetByID(_ context.Context, id string) (*models.Room, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &r, nil
}

func (m *memRooms) ListByHotel(_ context.Context, hotelID string) ([]models.Room, error) {
	var out []models.Room
	for _, r := range m.byID {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubUsers struct {
	user.UserService
	byID map[string]models.User
}

func (s *stubUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

type stubFlights struct {
	statuses   map[string]string
	numbers    map[string]string
	bookStatus string
	booked     []models.AFSBookingRequest
	mu         sync.Mutex
}

func (f *stubFlights) Configured() bool { return true }

func (f *stubFlights) Search(context.Context, string, string, string) (json.RawMessage, error) {
	return json.RawMessage(`{"results":[]}`), nil
}

func (f *stubFlights) GetFlight(_ context.Context, id string) (*models.AFSFlight, error) {
	status := f.statuses[id]
	if status == "" {
		status = models.FlightScheduled
	}
	return &models.AFSFlight{ID: id, FlightNumber: f.numbers[id], Status: status}, nil
}

func (f *stubFlights) Book(_ context.Context, req models.AFSBookingRequest) (*models.AFSBookingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = append(f.booked, req)
	status := f.bookStatus
	if status == "" {
		status = models.BookingConfirmed
	}
	return &models.AFSBookingResponse{BookingReference: "AFS-REF-1", Status: status}, nil
}

type stubGateway struct {
	declined bool
	charged  float64
}

func (g *stubGateway) Charge(_ context.Context, _ string, amount float64, _ string) (*payment.Charge, error) {
	g.charged = amount
	return &payment.Charge{Reference: "ch_test", Succeeded: !g.declined}, nil
}

type sentNotification struct {
	owner     bool
	recipient string
	message   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (r *recordingNotifier) record(owner bool, recipient, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentNotification{owner, recipient, message})
	return nil
}

func (r *recordingNotifier) NotifyUser(_ context.Context, userID, message string) error {
	return r.record(false, userID, message)
}

func (r *recordingNotifier) NotifyHotelOwner(_ context.Context, ownerID, message string) error {
	return r.record(true, ownerID, message)
}

func (r *recordingNotifier) List(context.Context, string) ([]models.Notification, error) {
	return nil, nil
}

func (r *recordingNotifier) MarkRead(context.Context, string, []string) (int64, error) {
	return 0, nil
}

func (r *recordingNotifier) UnreadCount(context.Context, string) (int64, bool, error) {
	return 0, false, nil
}

func (r *recordingNotifier) SendPush(context.Context, models.PushPayload) error { return nil }

type fixture struct {
	svc      *DefaultBookingService
	bookings *memBookings
	payments *memPayments
	flights  *stubFlights
	gateway  *stubGateway
	notifier *recordingNotifier
	now      time.Time
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newFixture() *fixture {
	f := &fixture{
		bookings: newMemBookings(),
		payments: newMemPayments(),
		flights:  &stubFlights{statuses: map[string]string{}, numbers: map[string]string{"F1": "AC100", "F2": "AC201"}},
		gateway:  &stubGateway{},
		notifier: &recordingNotifier{},
		now:      day("2025-01-10"),
	}
	f.svc = &DefaultBookingService{
		Bookings: f.bookings,
		Payments: f.payments,
		Hotels: &memHotels{byID: map[string]models.Hotel{
			"h1": {ID: "h1", OwnerID: "owner-1", Name: "Harbour Inn"},
		}},
		Rooms: &memRooms{byID: map[string]models.Room{
			"r1": {ID: "r1", HotelID: "h1", Type: "Deluxe", PricePerNight: 100, Available: true},
			"r2": {ID: "r2", HotelID: "h1", Type: "Suite", PricePerNight: 250, Available: true},
			"r3": {ID: "r3", HotelID: "h1", Type: "Deluxe", PricePerNight: 100, Available: false},
		}},
		Users: &stubUsers{byID: map[string]models.User{
			"u1": {ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", Role: models.RoleUser},
		}},
		Flights:  f.flights,
		Gateway:  f.gateway,
		Notifier: f.notifier,
		Logger:   zap.NewNop(),
		Now:      func() time.Time { return f.now },
	}
	return f
}

func roomRequest(roomID, checkIn, checkOut string) models.CreateBookingRequest {
	return models.CreateBookingRequest{
		RoomBookingInfo: models.RawJSON(`{"hotelId":"h1","roomId":"` + roomID + `","checkIn":"` + checkIn + `","checkOut":"` + checkOut + `"}`),
	}
}

const twoFlights = `{"flights":[` +
	`{"flightId":"F1","flightNumber":"AC100","origin":"YYZ","destination":"JFK","price":150},` +
	`{"flightId":"F2","flightNumber":"AC200","origin":"JFK","destination":"LAX","price":200,"mainDestination":"Los Angeles"}]}`

package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/YMS-SlotService/internal/api/middleware"
	"github.com/avdmitr/YMS-SlotService/internal/domain"
	createBooking "github.com/avdmitr/YMS-SlotService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	gotReq *createBooking.Request
	resp   *createBooking.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"object_id": 1,
	"booking_type": "in",
	"date": "2025-06-02",
	"start_time": "10:00",
	"vehicle_type_id": 3,
	"vehicle_plate": "А123БВ77",
	"driver_full_name": "Иванов Иван",
	"driver_phone": "+79990001122"
}`

func doRequest(t *testing.T, useCase *fakeUseCase, body string, withAuth bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(useCase, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if withAuth {
		req.Header.Set("X-User-ID", "42")
	}
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	date, _ := time.Parse(domain.DateFormat, "2025-06-02")

	t.Run("успешное создание возвращает 201", func(t *testing.T) {
		useCase := &fakeUseCase{resp: &createBooking.Response{
			ID:          10,
			TimeSlotID:  100,
			UserID:      42,
			DockID:      1,
			ObjectID:    1,
			SlotDate:    date,
			StartTime:   "10:00",
			EndTime:     "10:30",
			BookingType: domain.DirectionIn,
			Status:      domain.BookingConfirmed,
		}}

		rec := doRequest(t, useCase, validBody, true)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, useCase.gotReq)
		assert.Equal(t, int64(42), useCase.gotReq.UserID)
		assert.Contains(t, rec.Body.String(), `"id":10`)
	})

	t.Run("без аутентификации 401", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, validBody, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("битое тело запроса 400", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, "{not json", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("некорректная дата 400", func(t *testing.T) {
		body := strings.Replace(validBody, "2025-06-02", "02.06.2025", 1)
		rec := doRequest(t, &fakeUseCase{}, body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("нет свободного слота 409", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrSlotNotAvailable}, validBody, true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("превышение квоты 409", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrQuotaExceeded}, validBody, true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("тип ТС не разрешён поставщиком 400", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrVehicleTypeNotAllowed}, validBody, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("неизвестный тип ТС 404", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrVehicleTypeNotFound}, validBody, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("внутренняя ошибка 500", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrInternal}, validBody, true)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/services"
)

type CarHandler struct {
	svc *services.CarService
}

func NewCarHandler(svc *services.CarService) *CarHandler {
	return &CarHandler{svc: svc}
}

func (h *CarHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /cars", h.ListCars)
	mux.HandleFunc("GET /cars/{id}", h.GetCar)
	mux.HandleFunc("POST /cars", h.CreateCar)
	mux.HandleFunc("DELETE /cars/{id}", h.DeleteCar)
}

func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid car id"})
		return
	}

	car, err := h.svc.Get(r.Context(), carID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

type createCarRequest struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	BodyType     string  `json:"body_type"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"license_plate"`
	Color        string  `json:"color"`
	EngineVolume int     `json:"engine_volume"`
	Mileage      float64 `json:"mileage"`
	ImageURL     string  `json:"image_url"`
	DailyRate    float64 `json:"daily_rate"`
}

func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req createCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	if req.Make == "" || req.Model == "" || req.LicensePlate == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "make, model and license plate are required"})
		return
	}
	if req.DailyRate < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "daily rate cannot be negative"})
		return
	}

	car := &domain.Car{
		Make:         req.Make,
		Model:        req.Model,
		BodyType:     req.BodyType,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
		EngineVolume: req.EngineVolume,
		Mileage:      req.Mileage,
		ImageURL:     req.ImageURL,
		DailyRate:    req.DailyRate,
	}
	if err := h.svc.Create(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	carID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid car id"})
		return
	}

	if err := h.svc.Delete(r.Context(), carID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

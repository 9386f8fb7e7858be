package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zenakhane/api-creation-workshop/pkg/kit"
)

const (
	maxBodyBytes   = 1 << 20
	maxMemoryBytes = 1 << 20

	msgAdded       = "New garment added."
	msgMissingData = "Required data not supplied"
)

// ServiceAPI is what the HTTP layer needs from the catalog.
type ServiceAPI interface {
	List(ctx context.Context, gender, season Constraint) ([]Garment, error)
	UnderPrice(ctx context.Context, maxPrice string) ([]Garment, error)
	Add(ctx context.Context, in GarmentInput) (Garment, error)
	Ready(ctx context.Context) error
}

type Server struct {
	Service ServiceAPI
	Log     *zap.Logger
}

type garmentsResp struct {
	Garments []Garment `json:"garments"`
}

type statusResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Post("/", s.create)
	r.Get("/price/{price}", s.underPrice)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gender := ParseConstraint(q.Get("gender"))
	season := ParseConstraint(q.Get("season"))

	garments, err := s.Service.List(r.Context(), gender, season)
	if err != nil {
		s.serverError(w, r, "list garments failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, garmentsResp{Garments: garments})
}

func (s *Server) underPrice(w http.ResponseWriter, r *http.Request) {
	price := chi.URLParam(r, "price")

	garments, err := s.Service.UnderPrice(r.Context(), price)
	if err != nil {
		s.serverError(w, r, "filter garments by price failed", err, zap.String("price", price))
		return
	}
	kit.WriteJSON(w, http.StatusOK, garmentsResp{Garments: garments})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	in, err := decodeGarmentInput(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request body", map[string]any{"cause": err.Error()})
		return
	}

	if _, err := s.Service.Add(r.Context(), in); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			kit.WriteJSON(w, http.StatusOK, statusResp{Status: "error", Message: msgMissingData})
			return
		}
		s.serverError(w, r, "add garment failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, statusResp{Status: "success", Message: msgAdded})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(msg, append(fields, zap.Error(err))...)
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

type createReq struct {
	Description string    `json:"description"`
	Img         string    `json:"img"`
	Gender      string    `json:"gender"`
	Season      string    `json:"season"`
	Price       textValue `json:"price"`
}

// textValue accepts either a JSON string or a JSON number.
type textValue string

func (v *textValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = textValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*v = textValue(n)
	}
	return nil
}

func decodeGarmentInput(r *http.Request) (GarmentInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		var req createReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return GarmentInput{}, err
		}
		return GarmentInput{
			Description: req.Description,
			Img:         req.Img,
			Gender:      req.Gender,
			Season:      req.Season,
			Price:       string(req.Price),
		}, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
			return GarmentInput{}, err
		}

	default:
		if err := r.ParseForm(); err != nil {
			return GarmentInput{}, err
		}
	}

	return GarmentInput{
		Description: r.PostFormValue("description"),
		Img:         r.PostFormValue("img"),
		Gender:      r.PostFormValue("gender"),
		Season:      r.PostFormValue("season"),
		Price:       r.PostFormValue("price"),
	}, nil
}

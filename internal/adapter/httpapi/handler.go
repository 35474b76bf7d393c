package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/adapter/messaging/nats"
	"github.com/renthome/renter-service/internal/adapter/repository/cache"
	"github.com/renthome/renter-service/internal/mailer"
	"github.com/renthome/renter-service/internal/renting/domain"
	"github.com/renthome/renter-service/internal/renting/media"
	"github.com/renthome/renter-service/internal/renting/usecase"
)

// maxUploadBytes bounds a whole submission body: the largest allowed set of
// attachments plus headroom for the text fields and multipart framing.
const maxUploadBytes = media.MaxFiles*media.MaxFileSize + 1<<20

// Handler serves the listing and renter HTTP API. Cache, publisher and mailer
// are optional side channels: a nil field disables that channel and their
// failures never fail the request.
type Handler struct {
	ingestion *usecase.IngestionUsecase
	retrieval *usecase.RetrievalUsecase
	renters   *usecase.RenterUsecase
	cache     *cache.ListingCache
	publisher *nats.Publisher
	mailer    mailer.Mailer
	logger    *zap.Logger
}

type HandlerDeps struct {
	Ingestion *usecase.IngestionUsecase
	Retrieval *usecase.RetrievalUsecase
	Renters   *usecase.RenterUsecase
	Cache     *cache.ListingCache
	Publisher *nats.Publisher
	Mailer    mailer.Mailer
}

func NewHandler(deps HandlerDeps, logger *zap.Logger) *Handler {
	return &Handler{
		ingestion: deps.Ingestion,
		retrieval: deps.Retrieval,
		renters:   deps.Renters,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		mailer:    deps.Mailer,
		logger:    logger.Named("HTTPHandler"),
	}
}

// HandleRegister creates a renter account.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Mobile    string `json:"mobile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reg := usecase.Registration{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Password:  body.Password,
		Mobile:    body.Mobile,
	}

	renterID, err := h.renters.Register(r.Context(), reg)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishListingEvent(r.Context(), nats.SubjectRenterRegistered, "", renterID); err != nil {
			h.logger.Warn("failed to publish renter.registered", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": renterID})
}

// HandleLogin exchanges credentials for a bearer token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, renterID, err := h.renters.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"securityToken": token, "renterId": renterID})
}

// HandleGetRenter returns a renter's public profile with resolved listings.
func (h *Handler) HandleGetRenter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.retrieval.OwnerView(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleListRenters returns every renter with resolved listings.
func (h *Handler) HandleListRenters(w http.ResponseWriter, r *http.Request) {
	views, err := h.retrieval.ListRenters(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleListListings returns the full catalog, served from cache when warm.
func (h *Handler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		cached, err := h.cache.GetCatalog(r.Context())
		if err != nil {
			h.logger.Warn("catalog cache read failed", zap.Error(err))
		} else if cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	views, err := h.retrieval.ListAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetCatalog(r.Context(), views); err != nil {
			h.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, views)
}

// HandleCreateListing ingests a multipart listing submission. Text fields
// arrive as form values, attachments under the "images" field.
func (h *Handler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("renter-service/httpapi").Start(r.Context(), "IngestListing")
	defer span.End()
	r = r.WithContext(ctx)

	renterID, ok := RenterIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "renter id missing from request context")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	sub := usecase.Submission{
		Title:     r.FormValue("title"),
		Name:      r.FormValue("name"),
		Mobile:    r.FormValue("mobile"),
		Street:    r.FormValue("street"),
		Town:      r.FormValue("town"),
		District:  r.FormValue("district"),
		Pincode:   r.FormValue("pincode"),
		Pluscode:  r.FormValue("pluscode"),
		RentPrice: r.FormValue("rentprice"),
	}

	files, err := readUploads(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	listing, err := h.ingestion.CreateListing(r.Context(), renterID, sub, files)
	if err != nil {
		h.writeError(w, err)
		return
	}

	span.SetAttributes(
		attribute.String("listing.id", listing.ID),
		attribute.String("renter.id", listing.RenterID),
	)

	owner := h.retrieval.OwnerProfile(r.Context(), listing.ID, listing.RenterID)
	h.afterListingMutation(r, nats.SubjectListingCreated, listing, owner)

	writeJSON(w, http.StatusCreated, usecase.ToListingView(listing, owner))
}

// HandleDeleteListing removes a listing owned by the authenticated renter.
func (h *Handler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	renterID, ok := RenterIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "renter id missing from request context")
		return
	}

	id := chi.URLParam(r, "id")
	listing, err := h.ingestion.DeleteListing(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if listing.RenterID != "" && listing.RenterID != renterID {
		h.logger.Warn("listing deleted by non-owner",
			zap.String("listingID", listing.ID),
			zap.String("ownerID", listing.RenterID),
			zap.String("callerID", renterID))
	}

	h.afterListingMutation(r, nats.SubjectListingDeleted, listing, nil)

	writeJSON(w, http.StatusOK, map[string]string{"id": listing.ID})
}

// afterListingMutation runs the best-effort side channels shared by create
// and delete: cache invalidation, event publication, owner notification.
func (h *Handler) afterListingMutation(r *http.Request, subject string, listing *domain.Listing, owner *domain.Profile) {
	ctx := r.Context()
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			h.logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}
	if h.publisher != nil {
		if err := h.publisher.PublishListingEvent(ctx, subject, listing.ID, listing.RenterID); err != nil {
			h.logger.Warn("failed to publish listing event",
				zap.String("subject", subject), zap.Error(err))
		}
	}
	if h.mailer != nil && subject == nats.SubjectListingCreated && owner != nil && owner.Email != "" {
		if err := h.mailer.SendListingCreatedEmail(owner.Email, listing.Title); err != nil {
			h.logger.Warn("failed to send listing created email", zap.Error(err))
		}
	}
}

// readUploads collects the raw attachment bytes from the "images" field.
// Count, size and content-type rules are enforced downstream by the media
// codec so transport and business validation stay in one place.
func readUploads(r *http.Request) ([]media.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["images"]
	files := make([]media.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, media.File{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		})
	}
	return files, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	var pf *domain.PartialFailure
	switch {
	case errors.As(err, &vErr):
		writeJSONError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, domain.ErrInvalidMedia),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrInvalidCredentials):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrRenterNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &pf):
		h.logger.Error("partial failure during ingestion", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

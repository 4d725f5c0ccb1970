package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"wayplan/internal/models/db_models"
	"wayplan/internal/models/request_models"
	"wayplan/internal/models/response_models"
	"wayplan/internal/repositories"
	"wayplan/pkg/metrics"
	"wayplan/pkg/utils"
)

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, ownerID string, req request_models.ItineraryRequest) (*response_models.GenerateItineraryResponse, error)
	GetItinerary(ctx context.Context, ownerID string, id string) (*response_models.ItineraryDetailResponse, error)
	DeleteItinerary(ctx context.Context, ownerID string, id string) error
	ListItineraries(ctx context.Context, ownerID string, page int, pageSize int) ([]response_models.ItineraryListItem, error)
}

type ItineraryService struct {
	repo      repositories.ItineraryRepository
	generator utils.GenerationClientInterface
	enricher  utils.EnrichmentClientInterface
	documents *DocumentValidator
	logger    *zap.Logger
}

// NewItineraryService wires the generation ladder. generator and enricher are
// nil when their credentials are not configured.
func NewItineraryService(
	repo repositories.ItineraryRepository,
	generator utils.GenerationClientInterface,
	enricher utils.EnrichmentClientInterface,
	documents *DocumentValidator,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		repo:      repo,
		generator: generator,
		enricher:  enricher,
		documents: documents,
		logger:    logger.Named("itinerary"),
	}
}

// generationPlan is decided once per request, before any upstream call.
type generationPlan struct {
	useAI         bool
	useEnrichment bool
}

func (s *ItineraryService) selectPlan() generationPlan {
	hasGeneration := s.generator != nil
	return generationPlan{
		useAI:         hasGeneration,
		useEnrichment: hasGeneration && s.enricher != nil,
	}
}

// generationAttempt records which tier produced the document.
type generationAttempt struct {
	provenance response_models.Provenance
	started    time.Time
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, ownerID string, req request_models.ItineraryRequest) (*response_models.GenerateItineraryResponse, error) {
	log := s.logger.With(
		zap.String("trace_id", utils.TraceIDFrom(ctx)),
		zap.String("destination", req.Destination),
		zap.Int("num_days", req.NumDays))

	doc, attempt := s.produceDocument(ctx, req, log)

	data, err := documentJSON(doc)
	if err != nil {
		return nil, &utils.PersistenceError{Op: "encode", Err: err}
	}

	record := &db_models.Itinerary{
		UserID:              ownerID,
		Destination:         req.Destination,
		NumDays:             req.NumDays,
		Budget:              req.Budget,
		AgeGroups:           req.AgeGroups,
		PartySize:           req.PartySize,
		ActivityLevel:       req.ActivityLevel,
		DietaryRestrictions: req.DietaryRestrictions,
		AccessibilityNeeds:  req.AccessibilityNeeds,
		Interests:           req.Interests,
		Provenance:          string(attempt.provenance),
		ItineraryData:       datatypes.JSON(data),
	}

	id, err := s.repo.Create(ctx, record)
	if err != nil {
		log.Error("failed to save itinerary", zap.Error(err))
		return nil, err
	}

	metrics.ItinerariesGenerated.WithLabelValues(string(attempt.provenance)).Inc()
	metrics.GenerationDuration.WithLabelValues(string(attempt.provenance)).Observe(time.Since(attempt.started).Seconds())
	log.Info("itinerary created",
		zap.String("itinerary_id", id.String()),
		zap.String("provenance", string(attempt.provenance)),
		zap.Duration("took", time.Since(attempt.started)))

	return &response_models.GenerateItineraryResponse{
		ItineraryID: id.String(),
		Provenance:  attempt.provenance,
		Itinerary:   doc,
	}, nil
}

// produceDocument runs the degradation ladder. It never fails: every upstream
// or shape problem ends in the deterministic fallback.
func (s *ItineraryService) produceDocument(ctx context.Context, req request_models.ItineraryRequest, log *zap.Logger) (*response_models.ItineraryDocument, generationAttempt) {
	attempt := generationAttempt{started: time.Now()}
	plan := s.selectPlan()

	if !plan.useAI {
		log.Warn("generation credential missing, using fallback itinerary")
		return s.fallback(req, &attempt, log), attempt
	}

	enrichment := ""
	if plan.useEnrichment {
		text, err := s.enricher.Search(ctx, BuildEnrichmentQuery(req))
		if err != nil {
			metrics.UpstreamFailures.WithLabelValues("enrichment").Inc()
			log.Warn("enrichment search failed, proceeding without real-time data", zap.Error(err))
		} else {
			enrichment = strings.TrimSpace(text)
		}
	}

	attempt.provenance = response_models.ProvenanceAIWithoutEnrichment
	if enrichment != "" {
		attempt.provenance = response_models.ProvenanceAIWithEnrichment
	}

	systemPrompt, userPrompt := BuildGenerationPrompts(req, enrichment)
	raw, err := s.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("generation").Inc()
		log.Warn("AI generation failed, falling back to mock data", zap.Error(err))
		return s.fallback(req, &attempt, log), attempt
	}

	doc, err := s.documents.ValidateRaw(raw, req.NumDays)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("shape").Inc()
		log.Warn("AI itinerary rejected, falling back to mock data", zap.Error(err))
		return s.fallback(req, &attempt, log), attempt
	}

	return doc, attempt
}

func (s *ItineraryService) fallback(req request_models.ItineraryRequest, attempt *generationAttempt, log *zap.Logger) *response_models.ItineraryDocument {
	attempt.provenance = response_models.ProvenanceFallbackMock

	doc := GenerateFallbackItinerary(req.Destination, req.NumDays, req.Budget)
	validated, err := s.documents.ValidateDocument(doc, req.NumDays)
	if err != nil {
		log.Error("fallback itinerary failed validation", zap.Error(err))
		return doc
	}
	return validated
}

func (s *ItineraryService) GetItinerary(ctx context.Context, ownerID string, id string) (*response_models.ItineraryDetailResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, utils.ErrItineraryNotFound
	}
	if record.UserID != ownerID {
		return nil, utils.ErrForbidden
	}

	var doc response_models.ItineraryDocument
	if err := json.Unmarshal(record.ItineraryData, &doc); err != nil {
		return nil, &utils.PersistenceError{Op: "decode", Err: err}
	}

	return &response_models.ItineraryDetailResponse{
		ItineraryListItem:   toListItem(record),
		AgeGroups:           record.AgeGroups,
		DietaryRestrictions: record.DietaryRestrictions,
		AccessibilityNeeds:  record.AccessibilityNeeds,
		Interests:           record.Interests,
		Itinerary:           &doc,
	}, nil
}

func (s *ItineraryService) DeleteItinerary(ctx context.Context, ownerID string, id string) error {
	if err := s.repo.DeleteByID(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info("itinerary deleted",
		zap.String("trace_id", utils.TraceIDFrom(ctx)),
		zap.String("itinerary_id", id))
	return nil
}

func (s *ItineraryService) ListItineraries(ctx context.Context, ownerID string, page int, pageSize int) ([]response_models.ItineraryListItem, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	records, err := s.repo.ListByOwner(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]response_models.ItineraryListItem, 0, len(records))
	for i := range records {
		items = append(items, toListItem(&records[i]))
	}
	return items, nil
}

func toListItem(record *db_models.Itinerary) response_models.ItineraryListItem {
	return response_models.ItineraryListItem{
		ID:            record.ID.String(),
		Destination:   record.Destination,
		NumDays:       record.NumDays,
		Budget:        record.Budget,
		PartySize:     record.PartySize,
		ActivityLevel: record.ActivityLevel,
		Provenance:    record.Provenance,
		CreatedAt:     record.CreatedAt,
	}
}

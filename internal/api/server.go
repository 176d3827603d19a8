package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/oliver/market-intel/internal/assessment"
	"github.com/oliver/market-intel/internal/dataset"
	"github.com/oliver/market-intel/internal/intel"
	"github.com/oliver/market-intel/internal/models"
	"github.com/oliver/market-intel/internal/session"
)

type Server struct {
	Catalog  *dataset.Catalog
	Engine   *intel.Engine
	Sessions *session.Manager
	Echo     *echo.Echo
}

func NewServer(catalog *dataset.Catalog, engine *intel.Engine, sessions *session.Manager, corsOrigins []string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from config or default to localhost
	allowedOrigins := []string{"http://localhost:4200"}
	allowedOrigins = append(allowedOrigins, corsOrigins...)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s := &Server{
		Catalog:  catalog,
		Engine:   engine,
		Sessions: sessions,
		Echo:     e,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	api := s.Echo.Group("/api/v1")

	// Datasets
	api.GET("/opportunities", s.handleListOpportunities)
	api.GET("/opportunities/:id", s.handleGetOpportunity)
	api.GET("/regions", s.handleListRegions)
	api.GET("/regions/:id", s.handleGetRegion)
	api.GET("/sectors", s.handleListSectors)
	api.GET("/clients", s.handleListClients)
	api.GET("/clients/:id", s.handleGetClient)
	api.GET("/budgets", s.handleListBudgets)
	api.GET("/stats", s.handleGetStats)

	// Bid intelligence
	api.GET("/intelligence/pipeline", s.handlePipeline)
	api.GET("/intelligence/opportunities/:id", s.handleOpportunityIntelligence)
	api.GET("/intelligence/sectors", s.handleSectorStrengths)
	api.GET("/intelligence/competitors", s.handleCompetitors)

	// Assessment sessions
	api.GET("/assessments/catalog/:kind", s.handleAssessmentCatalog)
	api.POST("/assessments", s.handleCreateAssessment)
	api.GET("/assessments/:id", s.handleGetAssessment)
	api.POST("/assessments/:id/start", s.handleAssessmentStart)
	api.POST("/assessments/:id/next", s.handleAssessmentNext)
	api.POST("/assessments/:id/prev", s.handleAssessmentPrev)
	api.POST("/assessments/:id/goto", s.handleAssessmentGoto)
	api.POST("/assessments/:id/answers", s.handleAssessmentAnswer)
	api.POST("/assessments/:id/retake", s.handleAssessmentRetake)
	api.GET("/assessments/:id/result", s.handleAssessmentResult)
	api.DELETE("/assessments/:id", s.handleDeleteAssessment)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleListOpportunities(c echo.Context) error {
	f := dataset.Filter{
		Query:  c.QueryParam("q"),
		Region: c.QueryParam("region"),
		Sector: c.QueryParam("sector"),
		Client: c.QueryParam("client"),
		Status: models.Status(c.QueryParam("status")),
		SortBy: c.QueryParam("sort"),
	}
	if v, err := strconv.ParseFloat(c.QueryParam("min_value"), 64); err == nil && v > 0 {
		f.MinValue = v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_value"), 64); err == nil && v > 0 {
		f.MaxValue = v
	}

	opps := s.Catalog.FilterOpportunities(f)
	return c.JSON(http.StatusOK, map[string]any{
		"total":         len(opps),
		"opportunities": opps,
	})
}

func (s *Server) handleGetOpportunity(c echo.Context) error {
	opp, ok := s.Catalog.Opportunity(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, opp)
}

func (s *Server) handleListRegions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Catalog.RegionalTotals())
}

func (s *Server) handleGetRegion(c echo.Context) error {
	id := c.Param("id")
	region, ok := s.Catalog.Region(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"region":        region,
		"clients":       s.Catalog.ClientsByRegion(id),
		"opportunities": s.Catalog.OpportunitiesByRegion(id),
		"budgets":       s.Catalog.BudgetsByRegion(id),
	})
}

func (s *Server) handleListSectors(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Catalog.SectorTotals())
}

func (s *Server) handleListClients(c echo.Context) error {
	clients := s.Catalog.Clients
	if region := c.QueryParam("region"); region != "" {
		clients = s.Catalog.ClientsByRegion(region)
	} else if sector := c.QueryParam("sector"); sector != "" {
		clients = s.Catalog.ClientsBySector(sector)
	}
	return c.JSON(http.StatusOK, clients)
}

func (s *Server) handleGetClient(c echo.Context) error {
	client, ok := s.Catalog.Client(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, client)
}

func (s *Server) handleListBudgets(c echo.Context) error {
	budgets := s.Catalog.Budgets
	if region := c.QueryParam("region"); region != "" {
		budgets = s.Catalog.BudgetsByRegion(region)
	}
	return c.JSON(http.StatusOK, budgets)
}

func (s *Server) handleGetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"regions":        len(s.Catalog.Regions),
		"sectors":        len(s.Catalog.Sectors),
		"clients":        len(s.Catalog.Clients),
		"opportunities":  len(s.Catalog.Opportunities),
		"budget_2026":    s.Catalog.TotalBudget("2026"),
		"budget_10_year": s.Catalog.TotalBudget("10year"),
	})
}

func (s *Server) scoringContext() intel.Context {
	return intel.Context{ExistingClients: s.Catalog.ClientNames()}
}

func (s *Server) handlePipeline(c echo.Context) error {
	summary := s.Engine.PipelineIntelligence(s.Catalog.Opportunities, s.scoringContext())
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleOpportunityIntelligence(c echo.Context) error {
	opp, ok := s.Catalog.Opportunity(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, intel.ScoredOpportunity{
		Opportunity:  opp,
		Intelligence: s.Engine.CalculateBidScore(opp, s.scoringContext()),
	})
}

func (s *Server) handleSectorStrengths(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Engine.SectorStrengths())
}

func (s *Server) handleCompetitors(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Engine.AllCompetitors())
}

func (s *Server) handleAssessmentCatalog(c echo.Context) error {
	catalog, err := assessment.CatalogFor(assessment.Kind(c.Param("kind")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, catalog)
}

type createAssessmentRequest struct {
	Kind      assessment.Kind `json:"kind"`
	SubjectID string          `json:"subject_id"`
}

func (s *Server) handleCreateAssessment(c echo.Context) error {
	var req createAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	sess, err := s.Sessions.Create(req.Kind, req.SubjectID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, sess)
}

func (s *Server) handleGetAssessment(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, sess)
}

// updateSession applies a session mutation and maps manager errors to
// HTTP statuses.
func (s *Server) updateSession(c echo.Context, fn func(*assessment.Session) error) error {
	sess, err := s.Sessions.Update(c.Param("id"), fn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, sess)
}

func (s *Server) handleAssessmentStart(c echo.Context) error {
	return s.updateSession(c, func(sess *assessment.Session) error {
		sess.Start()
		return nil
	})
}

func (s *Server) handleAssessmentNext(c echo.Context) error {
	return s.updateSession(c, func(sess *assessment.Session) error {
		sess.Next()
		return nil
	})
}

func (s *Server) handleAssessmentPrev(c echo.Context) error {
	return s.updateSession(c, func(sess *assessment.Session) error {
		sess.Prev()
		return nil
	})
}

type gotoRequest struct {
	Section int `json:"section"`
}

func (s *Server) handleAssessmentGoto(c echo.Context) error {
	var req gotoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	return s.updateSession(c, func(sess *assessment.Session) error {
		return sess.Goto(req.Section)
	})
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Value      int    `json:"value"`
}

func (s *Server) handleAssessmentAnswer(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	return s.updateSession(c, func(sess *assessment.Session) error {
		return sess.Answer(req.QuestionID, req.Value)
	})
}

func (s *Server) handleAssessmentRetake(c echo.Context) error {
	return s.updateSession(c, func(sess *assessment.Session) error {
		sess.Retake()
		return nil
	})
}

func (s *Server) handleAssessmentResult(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	if !sess.AtEnd() {
		return c.JSON(http.StatusConflict, map[string]string{"error": assessment.ErrNotAtEnd.Error()})
	}

	switch sess.Kind {
	case assessment.KindRegion:
		var region *models.Region
		if r, ok := s.Catalog.Region(sess.SubjectID); ok {
			region = &r
		}
		return c.JSON(http.StatusOK, assessment.RegionAssessmentResult(sess.Answers, region))
	default:
		var opp *models.Opportunity
		if o, ok := s.Catalog.Opportunity(sess.SubjectID); ok {
			opp = &o
		}
		return c.JSON(http.StatusOK, assessment.AssessmentResult(sess.Answers, opp))
	}
}

func (s *Server) handleDeleteAssessment(c echo.Context) error {
	s.Sessions.Delete(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

package storesrv

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ticoencargo/cartera/internal/audit"
	"github.com/ticoencargo/cartera/internal/model"
	"github.com/ticoencargo/cartera/internal/storage"
)

// Server is the development data store: a small relational API shaped
// like the hosted store the app talks to in production, so the app
// client works against either unchanged. Rows live in Postgres or
// SQLite behind the repositories.
type Server struct {
	clients *storage.ClientRepository
	txs     *storage.TransactionRepository
	apiKey  string
	audit   *audit.Publisher // nil disables the audit stream
}

func New(clients *storage.ClientRepository, txs *storage.TransactionRepository, apiKey string, auditPub *audit.Publisher) *Server {
	return &Server{
		clients: clients,
		txs:     txs,
		apiKey:  apiKey,
		audit:   auditPub,
	}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", s.health)

	v1 := r.Group("/rest/v1", s.authorize)
	v1.GET("/clients", s.listClients)
	v1.POST("/clients", s.createClient)
	v1.PATCH("/clients/:id", s.updateClient)
	v1.DELETE("/clients/:id", s.deleteClient)
	v1.GET("/transactions", s.listTransactions)
	v1.POST("/transactions", s.createTransaction)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// authorize accepts the key in either header the client sends.
func (s *Server) authorize(c *gin.Context) {
	key := c.GetHeader("apikey")
	if key == "" {
		key = bearerToken(c.GetHeader("Authorization"))
	}
	if key != s.apiKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid api key"})
		return
	}
	c.Next()
}

func (s *Server) listClients(c *gin.Context) {
	rows, err := s.clients.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) createClient(c *gin.Context) {
	var req model.ClientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	created, err := s.clients.Create(c.Request.Context(), &model.Client{
		Name:        req.Name,
		Phone:       req.Phone,
		CurrentDebt: req.CurrentDebt,
		Notes:       req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	s.publish("clients", "insert", created.ID)
	c.JSON(http.StatusCreated, created)
}

type clientPatch struct {
	CurrentDebt *int64 `json:"current_debt"`
}

func (s *Server) updateClient(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var patch clientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON: " + err.Error()})
		return
	}
	if patch.CurrentDebt == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "current_debt is required"})
		return
	}
	if *patch.CurrentDebt < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "current_debt cannot be negative"})
		return
	}

	updated, err := s.clients.UpdateDebt(c.Request.Context(), id, *patch.CurrentDebt)
	if err != nil {
		if errors.Is(err, storage.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	s.publish("clients", "update", id)
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteClient(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	if err := s.clients.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	s.publish("clients", "delete", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listTransactions(c *gin.Context) {
	ctx := c.Request.Context()

	if v := c.Query("client_id"); v != "" {
		clientID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid client_id"})
			return
		}
		rows, err := s.txs.ListByClient(ctx, clientID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}

	rows, err := s.txs.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) createTransaction(c *gin.Context) {
	var req model.TransactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	created, err := s.txs.Create(c.Request.Context(), &model.Transaction{
		ClientID:    req.ClientID,
		Type:        req.Type,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	s.publish("transactions", "insert", created.ID)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) publish(collection, operation string, id int64) {
	if s.audit == nil {
		return
	}
	s.audit.Publish(audit.Event{
		Collection: collection,
		Operation:  operation,
		EntityID:   id,
		At:         time.Now(),
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Int("status", c.Writer.Status()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Dur("latency", time.Since(start)).
			Msg("store request")
	}
}

func paramID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	bidding "rentbid/internal/biddingService"
	model "rentbid/internal/models"
	"rentbid/services/bidding/helpers"
	"rentbid/utils"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key under which the identity middleware stores
// the resolved caller ID.
const UserIDKey = "user_id"

type BiddingServiceInterface interface {
	CreateSession(participantA, participantB string, maxRounds int, expiresAt *time.Time) (model.BiddingSession, error)
	SubmitBid(sessionID, userID string, amount float64) (bidding.SubmitResult, error)
	WithdrawSession(sessionID, requesterID string) (model.BiddingSession, error)
	FinalizeIfDue(sessionID string) (model.BiddingSession, error)
	GetSessionState(sessionID string) (bidding.SessionSnapshot, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// callerID extracts the user ID the identity middleware resolved. A missing
// ID means the route was mounted without the middleware or the request was
// not authenticated.
func callerID(c *gin.Context) (string, bool) {
	userID := c.GetString(UserIDKey)
	return userID, userID != ""
}

// CreateSessionHandler handles POST /sessions
func (h *BiddingHandler) CreateSessionHandler(c *gin.Context) {
	var req helpers.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateSessionHandler", err)
		return
	}

	session, err := h.service.CreateSession(req.ParticipantA, req.ParticipantB, req.MaxRounds, req.ExpiresAt)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateSessionHandler: failed to create session", map[string]any{
			"participant_a": req.ParticipantA,
			"participant_b": req.ParticipantB,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewSessionResponse(session), "session created successfully")
	helpers.LogSuccess("CreateSessionHandler", "session created successfully", map[string]any{
		"session_id":    session.SessionID,
		"participant_a": session.ParticipantA,
		"participant_b": session.ParticipantB,
	})
}

// SubmitBidHandler handles POST /sessions/:session_id/bids
func (h *BiddingHandler) SubmitBidHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("missing caller identity"), "authentication required")
		return
	}

	var req helpers.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitBidHandler", err)
		return
	}

	sessionID := c.Param("session_id")
	result, err := h.service.SubmitBid(sessionID, userID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("SubmitBidHandler: failed to submit bid", map[string]any{
			"session_id": sessionID,
			"user_id":    userID,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.SubmitBidResponse{
		Accepted:        result.Accepted,
		RejectionReason: result.RejectionReason,
	}
	if result.Bid != nil {
		bid := helpers.NewBidResponse(*result.Bid)
		resp.Bid = &bid
	}

	if !result.Accepted {
		// A rejected bid is a well-formed answer, not a server failure.
		utils.JSONResponse(c, http.StatusUnprocessableEntity, resp, result.RejectionReason)
		utils.Info("SubmitBidHandler: bid rejected", map[string]any{
			"session_id": sessionID,
			"user_id":    userID,
			"amount":     req.Amount,
			"reason":     result.RejectionReason,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid accepted")
	helpers.LogSuccess("SubmitBidHandler", "bid accepted", map[string]any{
		"bid_id":     result.Bid.BidID,
		"session_id": sessionID,
		"user_id":    userID,
		"amount":     req.Amount,
	})
}

// WithdrawSessionHandler handles POST /sessions/:session_id/withdraw
func (h *BiddingHandler) WithdrawSessionHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("missing caller identity"), "authentication required")
		return
	}

	sessionID := c.Param("session_id")
	session, err := h.service.WithdrawSession(sessionID, userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WithdrawSessionHandler: withdraw failed", map[string]any{
			"session_id": sessionID,
			"user_id":    userID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewSessionResponse(session), "session withdrawn successfully")
	helpers.LogSuccess("WithdrawSessionHandler", "session withdrawn successfully", map[string]any{
		"session_id": sessionID,
		"user_id":    userID,
	})
}

// FinalizeSessionHandler handles POST /sessions/:session_id/finalize
func (h *BiddingHandler) FinalizeSessionHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	session, err := h.service.FinalizeIfDue(sessionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("FinalizeSessionHandler: finalize failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewSessionResponse(session), "session state evaluated")
	helpers.LogSuccess("FinalizeSessionHandler", "session state evaluated", map[string]any{
		"session_id": sessionID,
		"status":     string(session.Status),
	})
}

// GetSessionStateHandler handles GET /sessions/:session_id
func (h *BiddingHandler) GetSessionStateHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	snapshot, err := h.service.GetSessionState(sessionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetSessionStateHandler: error retrieving session", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, snapshot, "session state retrieved successfully")
	helpers.LogSuccess("GetSessionStateHandler", "session state retrieved successfully", map[string]any{
		"session_id": sessionID,
		"status":     string(snapshot.Session.Status),
		"bid_count":  len(snapshot.Bids),
	})
}

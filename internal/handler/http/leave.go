package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
	CarryOver(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// claimString pulls one string claim out of the verified JWT.
func claimString(r *http.Request, key string) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	value, ok := claims[key].(string)
	return value, ok && value != ""
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Self-service requests omit employee_id; it comes from the token.
	if req.EmployeeID == "" {
		employeeID, ok := claimString(r, "employee_id")
		if !ok {
			response.Unauthorized(w, "Unauthorized")
			return
		}
		req.EmployeeID = employeeID
	}

	result, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", result)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	approverID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	approved, err := l.leaveService.ApproveLeaveRequest(r.Context(), requestID, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", approved)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req leave.RejectLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approverID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	rejected, err := l.leaveService.RejectLeaveRequest(r.Context(), requestID, approverID, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", rejected)
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		tokenEmployeeID, ok := claimString(r, "employee_id")
		if !ok {
			response.Unauthorized(w, "Unauthorized")
			return
		}
		employeeID = tokenEmployeeID
	}

	year := time.Now().UTC().Year()
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}

	balance, err := l.leaveService.GetLeaveBalance(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// Recompute implements LeaveHandler.
func (l *LeaveHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	report, err := l.leaveService.RunRecomputation(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recomputation completed", report)
}

// CarryOver implements LeaveHandler.
func (l *LeaveHandlerImpl) CarryOver(w http.ResponseWriter, r *http.Request) {
	currentYear := time.Now().UTC().Year()
	previousYear := currentYear - 1

	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		currentYear = parsed
		previousYear = parsed - 1
	}

	report, err := l.leaveService.RunCarryOver(r.Context(), previousYear, currentYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Carry-over completed", report)
}

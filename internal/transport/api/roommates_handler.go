package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
)

type RoommatesHandler struct {
	roommateSvs RoommateServicer
}

func NewRoommatesHandler(roommateSvs RoommateServicer) *RoommatesHandler {
	return &RoommatesHandler{
		roommateSvs: roommateSvs,
	}
}

type RoommateResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Self      bool      `json:"self"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RoommateCreateParams struct {
	Name string `binding:"required,min=1,max=255" json:"name"`
}

// Index GET RouteGroup + RoommatesRoute. Self-запись юзера идет первой.
func (h *RoommatesHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	roommates, err := h.roommateSvs.ListRoommates(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]RoommateResponse, len(roommates))
	for i, roommate := range roommates {
		response[i] = newRoommateResponse(&roommate)
	}
	c.JSON(http.StatusOK, response)
}

// Create POST RouteGroup + RoommatesRoute.
func (h *RoommatesHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params RoommateCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	roommate, err := h.roommateSvs.AddRoommate(reqCtx, currentUserID, params.Name)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRoommateResponse(roommate))
}

// Show GET RouteGroup + RoommateRoute.
func (h *RoommatesHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	roommateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	roommate, err := h.roommateSvs.GetRoommate(reqCtx, currentUserID, roommateID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoommateResponse(roommate))
}

// Delete DELETE RouteGroup + RoommateRoute. Удаляет roommate'а каскадом вместе
// с его долями и осиротевшими расходами.
func (h *RoommatesHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	roommateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.roommateSvs.DeleteRoommate(reqCtx, currentUserID, roommateID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

func newRoommateResponse(roommate *domain.Roommate) RoommateResponse {
	return RoommateResponse{
		ID:        roommate.ID,
		Name:      roommate.Name,
		Self:      roommate.Self,
		CreatedAt: roommate.CreatedAt,
		UpdatedAt: roommate.UpdatedAt,
	}
}

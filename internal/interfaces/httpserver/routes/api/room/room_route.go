package room

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/roomhandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/requests"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/validators"
)

type RoomRoute struct {
	roomHandler *roomhandler.RoomHandler
	binder      *requests.Binder
}

func NewRoomRoute(roomHandler *roomhandler.RoomHandler, binder *requests.Binder) *RoomRoute {
	return &RoomRoute{
		roomHandler: roomHandler,
		binder:      binder,
	}
}

func (roomRoute *RoomRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/room-types", roomRoute.ListRoomTypes)

	rooms := router.Group("/rooms")
	rooms.GET("", roomRoute.ListRooms)
	rooms.POST("", roomRoute.CreateRoom)
	rooms.GET("/:roomId", roomRoute.GetRoom)
}

// ListRoomTypes
// @Summary List room types
// @Description Returns the room type dictionary. Authentication is not required.
// @Tags Rooms API
// @Produce json
// @Success 200 {object} responses.RoomTypesListResponse "Room types"
// @Failure 500 {object} responses.ErrorResponse "Failed to fetch room types"
// @Router /api/room-types [get]
func (roomRoute *RoomRoute) ListRoomTypes(reqCtx *gin.Context) {
	resp, err := roomRoute.roomHandler.ExecuteListRoomTypes(reqCtx.Request.Context())
	if err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while fetching room types.")
		return
	}
	responses.JSON(reqCtx, http.StatusOK, resp)
}

// ListRooms
// @Summary List rooms
// @Description Returns the rooms owned by the caller, newest first, with photo counts.
// @Tags Rooms API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.RoomsListResponse "Rooms"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 500 {object} responses.ErrorResponse "Failed to fetch rooms"
// @Router /api/rooms [get]
func (roomRoute *RoomRoute) ListRooms(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	userID, err := validators.ValidateAuth(ctx, middlewares.UserIDFromContext(reqCtx))
	if err != nil {
		responses.HandleError(reqCtx, err, "")
		return
	}

	resp, err := roomRoute.roomHandler.ExecuteListRooms(ctx, roomhandler.ListRoomsCommand{UserID: userID})
	if err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while fetching rooms.")
		return
	}
	responses.JSON(reqCtx, http.StatusOK, resp)
}

// CreateRoom
// @Summary Create a room
// @Description Creates a room of the given type for the caller.
// @Tags Rooms API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.CreateRoomRequest true "Room to create"
// @Success 201 {object} responses.RoomResponse "Created room"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 404 {object} responses.ErrorResponse "Room type not found"
// @Failure 500 {object} responses.ErrorResponse "Failed to create room"
// @Router /api/rooms [post]
func (roomRoute *RoomRoute) CreateRoom(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	userID, err := validators.ValidateAuth(ctx, middlewares.UserIDFromContext(reqCtx))
	if err != nil {
		responses.HandleError(reqCtx, err, "")
		return
	}

	var req requests.CreateRoomRequest
	if err := roomRoute.binder.BindJSON(reqCtx, &req); err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while creating room.")
		return
	}

	resp, err := roomRoute.roomHandler.ExecuteCreateRoom(ctx, roomhandler.CreateRoomCommand{
		UserID:     userID,
		RoomTypeID: req.RoomTypeID,
	})
	if err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while creating room.")
		return
	}
	responses.JSON(reqCtx, http.StatusCreated, resp)
}

// GetRoom
// @Summary Get a room
// @Description Returns a room owned by the caller together with its photos and per-type counts.
// @Tags Rooms API
// @Security BearerAuth
// @Produce json
// @Param roomId path string true "Room ID (UUID)"
// @Success 200 {object} responses.RoomWithPhotosResponse "Room with photos"
// @Failure 400 {object} responses.ErrorResponse "Invalid roomId"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 404 {object} responses.ErrorResponse "Room not found or owned by another user"
// @Failure 500 {object} responses.ErrorResponse "Failed to fetch room"
// @Router /api/rooms/{roomId} [get]
func (roomRoute *RoomRoute) GetRoom(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	roomID, err := validators.ValidateRoomIDParam(ctx, reqCtx.Param("roomId"))
	if err != nil {
		responses.HandleError(reqCtx, err, "")
		return
	}
	userID, err := validators.ValidateAuth(ctx, middlewares.UserIDFromContext(reqCtx))
	if err != nil {
		responses.HandleError(reqCtx, err, "")
		return
	}

	resp, err := roomRoute.roomHandler.ExecuteGetRoom(ctx, roomhandler.GetRoomCommand{UserID: userID, RoomID: roomID})
	if err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while fetching room.")
		return
	}
	responses.JSON(reqCtx, http.StatusOK, resp)
}

package handlers

import (
	"errors"
	"strings"

	"staytrack/internal/core/services"
	"staytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RoomHandler handles room registry endpoints
type RoomHandler struct {
	roomService *services.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoomRequest represents room creation body
type CreateRoomRequest struct {
	RoomNumber   string   `json:"room_number"`
	Type         string   `json:"type"`
	PriceMonthly float64  `json:"price_monthly"`
	PriceDaily   float64  `json:"price_daily"`
	Capacity     int      `json:"capacity"`
	Facilities   []string `json:"facilities"`
}

// CreateRoom registers a new room
// @Summary Create room
// @Description Register a new room in the boarding house
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRoomRequest true "Room data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/rooms/create [post]
func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	if req.RoomNumber == "" {
		return response.BadRequest(c, "Room number is required")
	}
	if req.PriceMonthly <= 0 {
		return response.BadRequest(c, "Monthly price must be greater than zero")
	}

	input := &services.CreateRoomInput{
		RoomNumber:   req.RoomNumber,
		Type:         req.Type,
		PriceMonthly: req.PriceMonthly,
		PriceDaily:   req.PriceDaily,
		Capacity:     req.Capacity,
		Facilities:   req.Facilities,
	}

	room, err := h.roomService.CreateRoom(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNumberTaken):
			return response.Conflict(c, "Room number already exists")
		case errors.Is(err, services.ErrInvalidRoomType):
			return response.BadRequest(c, "Room type must be standard, premium or vip")
		case errors.Is(err, services.ErrInvalidRoomPrice):
			return response.BadRequest(c, "Monthly price must be greater than zero")
		default:
			return response.InternalServerError(c, "Failed to create room")
		}
	}

	return response.Created(c, "Room created successfully", fiber.Map{
		"room": room,
	})
}

// ListRooms lists all rooms
// @Summary List rooms
// @Description List all rooms with their occupancy status
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/rooms [get]
func (h *RoomHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := h.roomService.ListRooms(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list rooms")
	}

	return response.Success(c, "Rooms retrieved successfully", fiber.Map{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// GetRoom gets one room
// @Summary Get room
// @Description Get a room with its current tenant
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid room ID")
	}

	room, err := h.roomService.GetRoom(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			return response.NotFound(c, "Room not found")
		}
		return response.InternalServerError(c, "Failed to get room")
	}

	return response.Success(c, "Room retrieved successfully", fiber.Map{
		"room": room,
	})
}

// UpdateRoom updates a room
// @Summary Update room
// @Description Update room type, prices, capacity, facilities or status
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param body body services.UpdateRoomInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid room ID")
	}

	var input services.UpdateRoomInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	room, err := h.roomService.UpdateRoom(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, services.ErrRoomOccupied):
			return response.BadRequest(c, "Room is currently occupied")
		case errors.Is(err, services.ErrInvalidRoomType):
			return response.BadRequest(c, "Room type must be standard, premium or vip")
		case errors.Is(err, services.ErrInvalidRoomPrice):
			return response.BadRequest(c, "Monthly price must be greater than zero")
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	return response.Success(c, "Room updated successfully", fiber.Map{
		"room": room,
	})
}

// DeleteRoom deletes a room
// @Summary Delete room
// @Description Delete a room that is not currently occupied
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid room ID")
	}

	if err := h.roomService.DeleteRoom(c.Context(), userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, services.ErrRoomOccupied):
			return response.BadRequest(c, "Cannot delete an occupied room")
		default:
			return response.InternalServerError(c, "Failed to delete room")
		}
	}

	return response.Success(c, "Room deleted successfully", nil)
}

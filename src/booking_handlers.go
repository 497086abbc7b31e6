package main

import (
	"net/http"
	"shareit/src/apperrors"
	"shareit/src/types"
	"shareit/src/utils"

	"github.com/gin-gonic/gin"
)

type bookingListQuery struct {
	State string `form:"state,default=ALL"`
	types.PaginationQuery
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			bookerId := ctx.GetUint("id")
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.CreateBooking(&body, bookerId)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, booking)
		}).
		GET("/bookings/owner", func(ctx *gin.Context) {
			listUserBookings(ctx, true)
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.GetBookingByID(params.ID, userId)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		PATCH("/bookings/:id", func(ctx *gin.Context) {
			ownerId := ctx.GetUint("id")
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query struct {
				Approved *bool `form:"approved" binding:"required"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.ApproveBooking(params.ID, *query.Approved, ownerId)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		GET("/bookings", func(ctx *gin.Context) {
			listUserBookings(ctx, false)
		})
	return g
}

func listUserBookings(ctx *gin.Context, asOwner bool) {
	userId := ctx.GetUint("id")
	var query bookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, ok := types.ParseState(query.State)
	if !ok {
		abortWithError(ctx, apperrors.UnknownState(query.State))
		return
	}
	bookings, err := utils.GetAllUserBookings(userId, state, asOwner, query.PaginationQuery)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bookings)
}

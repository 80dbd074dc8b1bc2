package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/utils"
)

var validate = validator.New()

const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// objectIDParam parses the :id path parameter, answering 400 when malformed.
func objectIDParam(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid id"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// storeError maps repository errors onto responses. Unexpected errors are
// logged and reported with failMsg only.
func storeError(c *gin.Context, err error, notFoundMsg, failMsg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse(notFoundMsg))
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error(failMsg)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(failMsg))
	}
}

// maxQueryInt bounds numeric query values so page arithmetic cannot overflow.
const maxQueryInt = 1 << 20

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return min(v, maxQueryInt)
}

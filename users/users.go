package users

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"my-expenses-backend/config"
)

type Handler struct {
	mongoClient *mongo.Client
	config      *config.Config
	logger      *zap.Logger
}

func NewHandler(mongoClient *mongo.Client, config *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		mongoClient: mongoClient,
		config:      config,
		logger:      logger,
	}
}

func (h *Handler) usersCollection() *mongo.Collection {
	return h.mongoClient.Database(h.config.DatabaseName).Collection(h.config.CollectionUserName)
}

// HandleGetProfile returns the authenticated user's profile.
func (h *Handler) HandleGetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user User
	err := h.usersCollection().FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		h.logger.Error("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// HandleUpdateProfile updates basic profile fields and, when provided, the
// password. A name change refreshes the derived avatar URL.
func (h *Handler) HandleUpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
		update["profile_photo"] = AvatarURL(req.Name)
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.Bio != "" {
		update["bio"] = req.Bio
	}
	if req.Occupation != "" {
		update["occupation"] = req.Occupation
	}
	if req.Address != "" {
		update["address"] = req.Address
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.logger.Error("password hashing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}
		update["password_hash"] = string(hashed)
	}

	result, err := h.usersCollection().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update})
	if err != nil {
		h.logger.Error("profile update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var user User
	err = h.usersCollection().FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		h.logger.Error("profile reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch updated profile"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

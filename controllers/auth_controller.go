package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"interviewportal/dto"
	"interviewportal/mailer"
	"interviewportal/models"
	"interviewportal/utils"
)

// POST /api/auth/register
func (a *App) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		ctx := c.Request.Context()
		email := utils.NormalizeEmail(body.Email)

		count, err := a.Users.CountByEmail(ctx, email)
		if err != nil {
			a.serverError(c, err, "register lookup")
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "User already exists with this email",
			})
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			a.serverError(c, err, "hash password")
			return
		}

		role := models.Role(body.Role)
		if role == "" {
			role = models.RoleInterviewer
		}

		now := time.Now().UTC()
		user := models.User{
			ID:           bson.NewObjectID(),
			Name:         body.Name,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := a.Users.Insert(ctx, &user); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "User already exists with this email",
				})
				return
			}
			a.serverError(c, err, "register insert")
			return
		}

		token, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), a.Cfg.JWTSecret, a.Cfg.JWTExpire)
		if err != nil {
			a.serverError(c, err, "sign token")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"token":   token,
			"user":    user,
		})
	}
}

// POST /api/auth/login
func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		ctx := c.Request.Context()

		user, err := a.Users.FindByEmail(ctx, utils.NormalizeEmail(body.Email))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Incorrect email or password",
			})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Incorrect email or password",
			})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Account has been deactivated",
			})
			return
		}

		token, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), a.Cfg.JWTSecret, a.Cfg.JWTExpire)
		if err != nil {
			a.serverError(c, err, "sign token")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"user":    user,
		})
	}
}

// POST /api/auth/forgotpassword
func (a *App) ForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ForgotPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		ctx := c.Request.Context()

		user, err := a.Users.FindByEmail(ctx, utils.NormalizeEmail(body.Email))
		if err != nil {
			notFound(c, "No user found with this email")
			return
		}

		plain, hash, err := utils.GenerateResetToken()
		if err != nil {
			a.serverError(c, err, "generate reset token")
			return
		}

		reset := models.ResetToken{
			ID:        bson.NewObjectID(),
			UserID:    user.ID,
			TokenHash: hash,
			CreatedAt: time.Now().UTC(),
		}
		if err := a.Tokens.Insert(ctx, &reset); err != nil {
			a.serverError(c, err, "store reset token")
			return
		}

		resetURL := fmt.Sprintf("%s/reset-password/%s", a.Cfg.ClientURL, plain)
		subject, html := mailer.PasswordReset(user.Name, resetURL)

		// The reset mail is the one send that must succeed: without it the
		// token is unreachable, so roll it back on failure.
		if err := a.Mailer.Send(user.Email, subject, html); err != nil {
			_ = a.Tokens.Delete(ctx, reset.ID)
			a.serverError(c, err, "send reset email")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Password reset email sent successfully",
		})
	}
}

// PUT /api/auth/resetpassword/:token
func (a *App) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ResetPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		ctx := c.Request.Context()
		hashed := utils.HashResetToken(c.Param("token"))

		cutoff := time.Now().UTC().Add(-models.ResetTokenTTL)
		reset, err := a.Tokens.FindValid(ctx, hashed, cutoff)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		user, err := a.Users.FindByID(ctx, reset.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			a.serverError(c, err, "hash password")
			return
		}

		if err := a.Users.SetPassword(ctx, user.ID, hash); err != nil {
			a.serverError(c, err, "update password")
			return
		}

		// Single use: consume the token before answering.
		_ = a.Tokens.Delete(ctx, reset.ID)

		subject, html := mailer.PasswordResetConfirmation()
		a.notify(user.Email, subject, html)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Password reset successfully",
		})
	}
}

// GET /api/auth/me
func (a *App) GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		user, err := a.Users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User no longer exists"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// PUT /api/auth/updatedetails
func (a *App) UpdateDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateDetailsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		set := bson.M{"updatedAt": time.Now().UTC()}
		if body.Name != nil {
			set["name"] = *body.Name
		}
		if body.Email != nil {
			set["email"] = utils.NormalizeEmail(*body.Email)
		}

		user, err := a.Users.Update(c.Request.Context(), userID, set)
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "User already exists with this email",
				})
				return
			}
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User no longer exists"})
				return
			}
			a.serverError(c, err, "update details")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// PUT /api/auth/updatepassword
func (a *App) UpdatePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdatePasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		ctx := c.Request.Context()

		user, err := a.Users.FindByID(ctx, userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User no longer exists"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Current password is incorrect",
			})
			return
		}

		hash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			a.serverError(c, err, "hash password")
			return
		}

		if err := a.Users.SetPassword(ctx, userID, hash); err != nil {
			a.serverError(c, err, "update password")
			return
		}

		token, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), a.Cfg.JWTSecret, a.Cfg.JWTExpire)
		if err != nil {
			a.serverError(c, err, "sign token")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"message": "Password updated successfully",
		})
	}
}

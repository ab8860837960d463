package enquiryControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ashishpimple94/boultindia-api/models"
)

type EnquiryInput struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// POST /api/enquiries
func SubmitEnquiry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input EnquiryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		enquiry := models.Enquiry{
			Name:    input.Name,
			Company: input.Company,
			Email:   input.Email,
			Phone:   input.Phone,
			Message: input.Message,
		}
		if err := db.Create(&enquiry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit enquiry"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	}
}

// POST /api/contact
func SubmitContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		msg := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Message: input.Message,
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	}
}

// GET /admin/enquiries
func GetEnquiries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var enquiries []models.Enquiry
		if err := db.Order("created_at DESC").Find(&enquiries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch enquiries"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "enquiries": enquiries})
	}
}

// GET /admin/contact-messages
func GetContactMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var messages []models.ContactMessage
		if err := db.Order("created_at DESC").Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
	}
}

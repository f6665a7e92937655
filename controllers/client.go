package controllers

import (
	"errors"
	"net/http"
	"strings"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClientInput is used for both create and partial update; nil fields are left
// alone on update.
type ClientInput struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Company           *string `json:"company"`
	NIF               *string `json:"nif"`
	AddressStreet     *string `json:"addressStreet"`
	AddressCity       *string `json:"addressCity"`
	AddressPostalCode *string `json:"addressPostalCode"`
	AddressCountry    *string `json:"addressCountry"`
	Notes             *string `json:"notes"`
}

// apply copies the given fields onto cl, validating NIF and phone.
func (in ClientInput) apply(cl *models.Client) string {
	if in.Name != nil {
		cl.Name = strings.TrimSpace(*in.Name)
	}
	if in.NIF != nil {
		nif := trimmed(in.NIF)
		if nif != nil {
			if !utils.ValidateNIF(*nif) {
				return "Invalid NIF"
			}
			normalized := utils.NormalizeNIF(*nif)
			nif = &normalized
		}
		cl.NIF = nif
	}
	if in.Phone != nil {
		phone := trimmed(in.Phone)
		if phone != nil && !utils.ValidatePhone(*phone) {
			return "Invalid phone number format"
		}
		cl.Phone = phone
	}
	for dst, src := range map[**string]*string{
		&cl.Email:             in.Email,
		&cl.Company:           in.Company,
		&cl.AddressStreet:     in.AddressStreet,
		&cl.AddressCity:       in.AddressCity,
		&cl.AddressPostalCode: in.AddressPostalCode,
		&cl.AddressCountry:    in.AddressCountry,
		&cl.Notes:             in.Notes,
	} {
		if src != nil {
			*dst = trimmed(src)
		}
	}
	return ""
}

func CreateClient(c *gin.Context) {
	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if msg := input.apply(&client); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if client.Name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients lists clients by name.
func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := config.DB.Order("name ASC").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, clients)
}

func GetClient(c *gin.Context) {
	id, ok := parseID(c, "client")
	if !ok {
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

func UpdateClient(c *gin.Context) {
	id, ok := parseID(c, "client")
	if !ok {
		return
	}

	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if msg := input.apply(&client); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if client.Name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient removes the client. Proposals keep their own snapshot.
func DeleteClient(c *gin.Context) {
	id, ok := parseID(c, "client")
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Client{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

package controllers

import (
	"mime"
	"net/http"

	"msilva-backend/models"
	"msilva-backend/render"
	"msilva-backend/services"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
)

type PatchProposalInput struct {
	Status   string `json:"status"`
	Language string `json:"language"`
}

// GetProposals lists proposals newest first, optionally by ?status=.
func GetProposals(c *gin.Context) {
	proposals, err := proposalService().List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	c.JSON(http.StatusOK, proposals)
}

// CreateProposal stores a proposal whose lines were priced by the client.
func CreateProposal(c *gin.Context) {
	var input services.CreateProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	p, err := proposalService().Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// CreateProposalFromSelection prices catalog references server side.
func CreateProposalFromSelection(c *gin.Context) {
	var input services.SelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	p, err := proposalService().CreateFromSelection(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PreviewProposal composes a selection without saving it. ?format=html
// returns the print view.
func PreviewProposal(c *gin.Context) {
	var input services.SelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	doc, err := proposalService().Preview(c.Request.Context(), input, c.Query("lang"))
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	if c.Query("format") != "html" {
		c.JSON(http.StatusOK, doc)
		return
	}
	page, err := render.HTML(doc)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func GetProposal(c *gin.Context) {
	id, ok := parseID(c, "proposal")
	if !ok {
		return
	}
	p, err := proposalService().Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// PatchProposal updates status and/or language.
func PatchProposal(c *gin.Context) {
	id, ok := parseID(c, "proposal")
	if !ok {
		return
	}
	var input PatchProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	p, err := proposalService().Patch(c.Request.Context(), id, input.Status, input.Language)
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func AcceptProposal(c *gin.Context) {
	id, ok := parseID(c, "proposal")
	if !ok {
		return
	}
	p, err := proposalService().MarkAccepted(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProposalPDF renders the stored proposal inline and marks it sent.
func GetProposalPDF(c *gin.Context) {
	id, ok := parseID(c, "proposal")
	if !ok {
		return
	}
	res, err := proposalService().GeneratePDF(c.Request.Context(), id, models.ParseLanguage(c.Query("lang")))
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": res.Filename}))
	c.Data(http.StatusOK, "application/pdf", res.Bytes)
}

// GetProposalHTML is the print view of a stored proposal.
func GetProposalHTML(c *gin.Context) {
	id, ok := parseID(c, "proposal")
	if !ok {
		return
	}
	doc, err := proposalService().RenderDocument(c.Request.Context(), id, models.ParseLanguage(c.Query("lang")))
	if err != nil {
		respondServiceError(c, err, "Proposal not found")
		return
	}
	page, err := render.HTML(doc)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

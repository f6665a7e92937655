package controllers

import (
	"net/http"

	"msilva-backend/services"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetStaffMembers(c *gin.Context) {
	members, err := staffService().ListMembers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Staff member not found")
		return
	}
	c.JSON(http.StatusOK, members)
}

func CreateStaffMember(c *gin.Context) {
	var input services.StaffMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	m, err := staffService().CreateMember(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Staff member not found")
		return
	}
	c.JSON(http.StatusCreated, m)
}

func UpdateStaffMember(c *gin.Context) {
	id, ok := parseID(c, "staff member")
	if !ok {
		return
	}
	var input services.StaffMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	m, err := staffService().UpdateMember(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Staff member not found")
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteStaffMember deactivates the member; history is kept.
func DeleteStaffMember(c *gin.Context) {
	id, ok := parseID(c, "staff member")
	if !ok {
		return
	}
	if err := staffService().DeactivateMember(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Staff member not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func GetStaffRoles(c *gin.Context) {
	roles, err := staffService().ListRoles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Staff role not found")
		return
	}
	c.JSON(http.StatusOK, roles)
}

func CreateStaffRole(c *gin.Context) {
	var input services.StaffRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	role, err := staffService().CreateRole(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Staff role not found")
		return
	}
	c.JSON(http.StatusCreated, role)
}

func UpdateStaffRole(c *gin.Context) {
	id, ok := parseID(c, "staff role")
	if !ok {
		return
	}
	var input services.StaffRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	role, err := staffService().UpdateRole(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Staff role not found")
		return
	}
	c.JSON(http.StatusOK, role)
}

func DeleteStaffRole(c *gin.Context) {
	id, ok := parseID(c, "staff role")
	if !ok {
		return
	}
	if err := staffService().DeleteRole(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Staff role not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetServiceStaff lists assignments for ?eventId= and/or ?proposalId=.
func GetServiceStaff(c *gin.Context) {
	eventID, ok := optionalID(c, "eventId")
	if !ok {
		return
	}
	proposalID, ok := optionalID(c, "proposalId")
	if !ok {
		return
	}
	out, err := staffService().ListAssignments(c.Request.Context(), eventID, proposalID)
	if err != nil {
		respondServiceError(c, err, "Assignment not found")
		return
	}
	c.JSON(http.StatusOK, out)
}

func CreateServiceStaff(c *gin.Context) {
	var input services.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	a, err := staffService().CreateAssignment(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Assignment not found")
		return
	}
	c.JSON(http.StatusCreated, a)
}

func UpdateServiceStaff(c *gin.Context) {
	id, ok := parseID(c, "assignment")
	if !ok {
		return
	}
	var input services.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	a, err := staffService().UpdateAssignment(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Assignment not found")
		return
	}
	c.JSON(http.StatusOK, a)
}

func DeleteServiceStaff(c *gin.Context) {
	id, ok := parseID(c, "assignment")
	if !ok {
		return
	}
	if err := staffService().DeleteAssignment(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Assignment not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

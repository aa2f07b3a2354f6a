package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-manager-backend/internal/mailer"
	"fleet-manager-backend/internal/model"
	"fleet-manager-backend/internal/report"
)

type inspectionRequest struct {
	VehicleID int64  `json:"vehicle_id" binding:"required"`
	UserID    int64  `json:"user_id" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Date      string `json:"date" binding:"required"`
	SignedBy  string `json:"signed_by" binding:"required"`
	Status    string `json:"status"`
}

// CompleteInspection handles POST /api/inspections/complete. It persists the
// inspection, renders the signed PDF report, and emails it to every admin.
// Individual email failures are logged and skipped.
func (h *Handler) CompleteInspection(c *gin.Context) {
	var req inspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, ok := parseDate(c, "date", req.Date)
	if !ok {
		return
	}

	inspection := model.Inspection{
		VehicleID: req.VehicleID,
		UserID:    req.UserID,
		Type:      model.InspectionType(req.Type),
		Date:      date,
		SignedBy:  req.SignedBy,
		Status:    model.TripStatus(req.Status),
	}

	pdfPath, err := report.GenerateInspectionPDF(h.reportDir, &inspection)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	inspection.ReportPath = pdfPath

	if err := h.store.CreateInspection(c.Request.Context(), &inspection); err != nil {
		respondError(c, err)
		return
	}

	admins, err := h.store.ListAdmins(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching admins for inspection notification: %v", err)
	}
	for _, admin := range admins {
		msg := mailer.Message{
			To:             admin.Email,
			Subject:        "Inspection Completed Notification",
			Body:           inspectionEmailBody(&inspection),
			AttachmentPath: pdfPath,
		}
		if err := h.mailer.Send(msg); err != nil {
			log.Printf("Failed to send inspection email to %s: %v", admin.Email, err)
		}
	}

	c.JSON(http.StatusCreated, inspection)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func inspectionEmailBody(i *model.Inspection) string {
	return "An inspection has been completed.\n\n" +
		"Inspection details:\n" +
		"- Vehicle ID: " + formatInt(i.VehicleID) + "\n" +
		"- Inspected by user ID: " + formatInt(i.UserID) + "\n" +
		"- Type: " + string(i.Type) + "\n" +
		"- Date: " + i.Date.Format(dateLayout) + "\n" +
		"- Status: " + string(i.Status) + "\n" +
		"- Signed by: " + i.SignedBy + "\n\n" +
		"Signed inspection PDF is attached."
}

// ListVehicleInspections handles GET /api/inspections/vehicle/:vehicle_id.
func (h *Handler) ListVehicleInspections(c *gin.Context) {
	id, ok := pathID(c, "vehicle_id")
	if !ok {
		return
	}
	inspections, err := h.store.ListVehicleInspections(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inspections)
}

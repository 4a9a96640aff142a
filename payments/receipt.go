package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func receiptSecret() string {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return s
	}
	return "receipt-dev-secret"
}

// ReceiptQRPayload returns the signed string embedded in a receipt's QR
// code: paymentID|transactionID|amountCents|signature. Support staff scan it
// to verify a printed receipt against the ledger.
func ReceiptQRPayload(p models.Payment) string {
	data := fmt.Sprintf("%s|%s|%d", p.PaymentID, p.TransactionID, int64(p.Amount*100))
	h := hmac.New(sha256.New, []byte(receiptSecret()))
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

// VerifyReceiptQR checks a scanned QR payload's signature.
func VerifyReceiptQR(payload string) bool {
	idx := bytes.LastIndexByte([]byte(payload), '|')
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]
	h := hmac.New(sha256.New, []byte(receiptSecret()))
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sig))
}

// DownloadReceipt renders a PDF receipt for a settled payment.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var payment models.Payment
	if err := db.PaymentsCollection.FindOne(ctx, bson.M{"paymentid": ps.ByName("id")}).Decode(&payment); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Payment not found")
		return
	}
	if payment.ClientID != userID && payment.FreelancerID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view this payment")
		return
	}
	if payment.Status != models.PaymentCompleted && payment.Status != models.PaymentRefunded {
		utils.RespondWithError(w, http.StatusConflict, "No receipt for an unsettled payment")
		return
	}

	var job models.Job
	jobTitle := payment.JobID
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": payment.JobID}).Decode(&job); err == nil {
		jobTitle = job.Title
	}

	qrPNG, err := qrcode.Encode(ReceiptQRPayload(payment), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Receipt ID: %s", payment.PaymentID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Job: %s", jobTitle))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Amount: %.2f %s", payment.Amount, payment.Currency))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", payment.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Transaction: %s", payment.TransactionID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", payment.CreatedAt.Format(time.RFC1123)))
	if !payment.ReleaseDate.IsZero() {
		pdf.Ln(8)
		pdf.Cell(0, 10, fmt.Sprintf("Released: %s", payment.ReleaseDate.Format(time.RFC1123)))
	}
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+payment.PaymentID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

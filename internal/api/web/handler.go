package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	app "bloodgroup-bot/internal/application"
	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

const maxUploadSize = 20 << 20

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Blood Group Detection</title></head>
<body>
<h1 style="color: red;">🩸 Blood Group Detection</h1>
<form method="post" action="/report" enctype="multipart/form-data">
  <p><label>👤 Patient Name <input name="name" required></label></p>
  <p><label>🎂 Patient Age <input name="age" type="number" min="1" max="120" required></label></p>
  <p><label>👩‍⚕️ Patient Gender
    <select name="gender">{{range .Genders}}<option>{{.}}</option>{{end}}</select>
  </label></p>
  <p><label>📂 Blood Sample Image <input name="file" type="file" accept=".jpg,.jpeg,.png" required></label></p>
  <p><button type="submit">🔍 Process</button></p>
</form>
</body>
</html>
`))

type Handler struct {
	sessions  *app.SessionService
	maxUpload int64
}

func NewHandler(sessions *app.SessionService) *Handler {
	return &Handler{sessions: sessions, maxUpload: maxUploadSize}
}

// Routes регистрирует обработчики формы
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.FormHandler)
	mux.HandleFunc("/report", h.ReportHandler)
	mux.HandleFunc("/health", h.HealthHandler)
	return mux
}

// FormHandler отдаёт страницу с формой
func (h *Handler) FormHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Genders []entity.Gender }{
		Genders: []entity.Gender{entity.GenderMale, entity.GenderFemale, entity.GenderOther},
	}
	if err := formTemplate.Execute(w, data); err != nil {
		log.Printf("Error rendering form: %v", err)
	}
}

// ReportHandler обрабатывает POST /report и возвращает PDF
func (h *Handler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	patient, err := patientFromForm(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sample, err := sampleFromForm(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.sessions.Run(r.Context(), patient, sample)
	switch {
	case errors.Is(err, entity.ErrInvalidPatient), errors.Is(err, app.ErrNoSample), errors.Is(err, port.ErrUnsupportedText):
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("Error processing sample: %v", err)
		respondError(w, fmt.Sprintf("Detection failed: %v", err), http.StatusBadGateway)
		return
	}

	c := out.Report.Classification
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="hospital_blood_group_report.pdf"`)
	w.Header().Set("X-Report-ID", out.Report.ID.String())
	w.Header().Set("X-Blood-Group", string(c.Group))
	w.Header().Set("X-Detected-Components", c.Markers.String())
	if warning := warningFor(c); warning != "" {
		w.Header().Set("X-Warning", warning)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Document); err != nil {
		log.Printf("Error writing report: %v", err)
	}
}

// warningFor возвращает предупреждение для результата, который не является диагнозом.
func warningFor(c entity.Classification) string {
	switch {
	case c.NoMarkers:
		return "no blood group markers detected"
	case !c.Group.IsKnown():
		return "detected markers do not match any known blood group"
	}
	return ""
}

// HealthHandler проверка здоровья сервиса
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func patientFromForm(r *http.Request) (entity.Patient, error) {
	name := strings.TrimSpace(r.FormValue("name"))
	ageStr := strings.TrimSpace(r.FormValue("age"))
	if name == "" || ageStr == "" {
		return entity.Patient{}, fmt.Errorf("%w: please fill in all patient information", entity.ErrInvalidPatient)
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return entity.Patient{}, fmt.Errorf("%w: age must be a number", entity.ErrInvalidPatient)
	}
	gender, err := entity.ParseGender(r.FormValue("gender"))
	if err != nil {
		return entity.Patient{}, err
	}

	p := entity.Patient{Name: name, Age: age, Gender: gender}
	return p, p.Validate()
}

func sampleFromForm(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, app.ErrNoSample
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sample: %w", err)
	}
	if len(data) == 0 {
		return nil, app.ErrNoSample
	}
	return data, nil
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}

package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/goliatone/go-socreport/pkg/orchestrator"
	"github.com/goliatone/go-socreport/pkg/report"
	"github.com/goliatone/go-socreport/pkg/session"
	"github.com/goliatone/go-socreport/pkg/store"
)

const (
	flashInfo  = "info"
	flashError = "error"
)

type fieldUpdate struct {
	Field string         `json:"field"`
	Value jsontext.Value `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (c *Component) engine() string {
	if c.opts.Engine != "" {
		return c.opts.Engine
	}
	return c.opts.Orchestrator.DefaultEngine()
}

func (c *Component) session(w http.ResponseWriter, r *http.Request) *session.Session {
	return c.opts.Sessions.Resolve(w, r)
}

func (c *Component) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, link(c.opts.BasePath, "/"), http.StatusSeeOther)
}

func (c *Component) handleEditor(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)
	c.writePage(w, http.StatusOK, editorPage, c.editorContext(sess.Store.Snapshot(), sess.TakeFlashes()))
}

// handleSetField applies one widget change. Unknown fields answer 404 and
// values of the wrong shape 422; the report is left untouched in both cases.
func (c *Component) handleSetField(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)

	body, err := io.ReadAll(io.LimitReader(r.Body, c.opts.MaxUploadBytes))
	if err != nil {
		writeJSONError(w, StatusError{Code: http.StatusBadRequest, Err: err}, "")
		return
	}
	var update fieldUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		writeJSONError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("decode field update: %w", err)}, "")
		return
	}
	if update.Field == "" {
		writeJSONError(w, StatusError{Code: http.StatusBadRequest, Err: errors.New("field is required")}, "")
		return
	}

	var value any
	if len(update.Value) > 0 {
		if err := json.Unmarshal(update.Value, &value); err != nil {
			writeJSONError(w, StatusError{Code: http.StatusBadRequest, Err: err}, update.Field)
			return
		}
	}
	if _, ok := report.Lookup(update.Field); !ok {
		writeJSONError(w, fmt.Errorf("%w: %s", report.ErrKeyNotFound, update.Field), update.Field)
		return
	}
	if err := sess.Store.Set(update.Field, value); err != nil {
		writeJSONError(w, err, update.Field)
		return
	}
	c.writeReport(w, sess.Store)
}

func (c *Component) handleReport(w http.ResponseWriter, r *http.Request) {
	c.writeReport(w, c.session(w, r).Store)
}

func (c *Component) writeReport(w http.ResponseWriter, s *store.Store) {
	data, err := s.Export()
	if err != nil {
		writeJSONError(w, err, "")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

// handleForm accepts the whole editor form for browsers without scripting.
// Checkboxes missing from the submission are unchecked.
func (c *Component) handleForm(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, c.opts.MaxUploadBytes)
	if err := r.ParseForm(); err != nil {
		sess.AddFlash(flashError, "Could not read the form: "+err.Error())
		c.redirectHome(w, r)
		return
	}

	var failed []string
	for _, desc := range report.Fields() {
		name := string(desc.Field)
		var value any
		if desc.Kind == report.KindCheckbox {
			value = r.PostForm.Has(name)
		} else {
			if !r.PostForm.Has(name) {
				continue
			}
			value = r.PostForm.Get(name)
		}
		if err := sess.Store.Set(name, value); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", desc.Label, err))
		}
	}
	for _, msg := range failed {
		sess.AddFlash(flashError, msg)
	}
	if len(failed) == 0 {
		sess.AddFlash(flashInfo, "Report updated.")
	}
	c.redirectHome(w, r)
}

func (c *Component) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)
	out, err := c.opts.Orchestrator.Preview(r.Context(), sess.Store.Snapshot())
	if err != nil {
		c.opts.Logger.Error("preview failed", "session", sess.ID, "error", err)
		c.writeErrorPage(w, err)
		return
	}
	w.Header().Set("Content-Type", orchestrator.ContentTypeHTML)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(out))
}

func (c *Component) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)
	artifact, err := c.opts.Orchestrator.ExportJSON(sess.Store.Snapshot())
	if err != nil {
		sess.AddFlash(flashError, "JSON export failed: "+err.Error())
		c.redirectHome(w, r)
		return
	}
	writeArtifact(w, artifact)
}

// handleExportPDF renders and converts the current report. Engine failures are
// reported on the editor page and no file is sent.
func (c *Component) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)
	engine := r.URL.Query().Get("engine")
	if engine == "" {
		engine = c.engine()
	}
	artifact, err := c.opts.Orchestrator.ExportPDF(r.Context(), sess.Store.Snapshot(), engine)
	if err != nil {
		c.opts.Logger.Error("pdf export failed", "session", sess.ID, "engine", engine, "error", err)
		sess.AddFlash(flashError, "PDF export failed: "+err.Error())
		c.redirectHome(w, r)
		return
	}
	writeArtifact(w, artifact)
}

// handleImport replaces the report with an uploaded JSON export. A document
// that fails to parse leaves the current report unchanged.
func (c *Component) handleImport(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, c.opts.MaxUploadBytes+4096)
	if err := r.ParseMultipartForm(c.opts.MaxUploadBytes); err != nil {
		sess.AddFlash(flashError, "Import failed: "+err.Error())
		c.redirectHome(w, r)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		sess.AddFlash(flashError, "Import failed: choose a JSON file to upload.")
		c.redirectHome(w, r)
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(file, c.opts.MaxUploadBytes)); err != nil {
		sess.AddFlash(flashError, "Import failed: "+err.Error())
		c.redirectHome(w, r)
		return
	}
	if err := sess.Store.Import(buf.Bytes()); err != nil {
		c.opts.Logger.Debug("import rejected", "session", sess.ID, "file", header.Filename, "error", err)
		sess.AddFlash(flashError, "Import failed: "+err.Error())
		c.redirectHome(w, r)
		return
	}
	sess.AddFlash(flashInfo, fmt.Sprintf("Imported %s.", header.Filename))
	c.redirectHome(w, r)
}

func (c *Component) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)
	if err := sess.Store.Reset(); err != nil {
		sess.AddFlash(flashError, "Reset failed: "+err.Error())
	} else {
		sess.AddFlash(flashInfo, "Report reset to defaults.")
	}
	c.redirectHome(w, r)
}

func writeArtifact(w http.ResponseWriter, artifact orchestrator.Artifact) {
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	w.Header().Set("Content-Length", fmt.Sprint(len(artifact.Data)))
	_, _ = w.Write(artifact.Data)
}

func writeJSONError(w http.ResponseWriter, err error, field string) {
	status := statusFor(err)
	payload, mErr := json.Marshal(errorResponse{Error: err.Error(), Field: field})
	if mErr != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

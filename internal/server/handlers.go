package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/ukaji3/sheetfilter-go/internal/metrics"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// formOverhead is the room left for the text fields and multipart framing on top of the upload limit.
const formOverhead = 1 << 20

// acceptedExtensions are the spreadsheet types offered by the file picker.
var acceptedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".xls"}

// Message levels shown on the page.
const (
	levelError   = "error"
	levelWarning = "warning"
	levelInfo    = "info"
	levelSuccess = "success"
)

type filterForm struct {
	SheetName string `form:"sheet"`
	Column    string `form:"column"`
	Query     string `form:"query"`
}

// outcome is the result of one filter request, ready to render as HTML or JSON.
type outcome struct {
	Request sheetfilter.Request
	Table   *models.Table
	Status  int
	Code    string
	Level   string
	Message string
}

type pageData struct {
	Request sheetfilter.Request
	Accept  string
	Outcome *outcome
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		Request: sheetfilter.Request{SheetName: s.cfg.Filter.SheetName, Column: s.cfg.Filter.Column},
		Accept:  strings.Join(acceptedExtensions, ","),
	})
}

func (s *Server) handleFilterPage(c *gin.Context) {
	out := s.runFilter(c)
	c.HTML(out.Status, "index.html", pageData{
		Request: out.Request,
		Accept:  strings.Join(acceptedExtensions, ","),
		Outcome: &out,
	})
}

func (s *Server) handleFilterAPI(c *gin.Context) {
	out := s.runFilter(c)
	if out.Status != http.StatusOK {
		c.JSON(out.Status, gin.H{"error": out.Message, "code": out.Code})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request": out.Request,
		"matched": out.Table.Len(),
		"message": out.Message,
		"table":   out.Table,
	})
}

// runFilter reads the uploaded workbook and filters it. Every failure is
// turned into an outcome; nothing here aborts the request.
func (s *Server) runFilter(c *gin.Context) outcome {
	start := time.Now()
	limit := s.cfg.Server.MaxUploadBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+formOverhead)

	var form filterForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return s.finish(c, start, badRequest(sheetfilter.Request{}, fileTooLarge(limit)))
		}
		return s.finish(c, start, badRequest(sheetfilter.Request{}, "The form could not be read."))
	}

	req := sheetfilter.Request{
		SheetName: strings.TrimSpace(form.SheetName),
		Column:    strings.TrimSpace(form.Column),
		Query:     form.Query,
	}.WithDefaults(s.cfg.Filter.SheetName, s.cfg.Filter.Column)

	file, header, err := c.Request.FormFile("document")
	if err != nil {
		return s.finish(c, start, badRequest(req, "Choose a spreadsheet file to upload."))
	}
	defer file.Close()

	if header.Size > limit {
		return s.finish(c, start, badRequest(req, fileTooLarge(limit)))
	}
	if !acceptedExtension(header.Filename) {
		return s.finish(c, start, badRequest(req,
			fmt.Sprintf("Only spreadsheet files (%s) are accepted.", strings.Join(acceptedExtensions, ", "))))
	}

	if err := req.Validate(); err != nil {
		return s.finish(c, start, outcome{
			Request: req,
			Status:  http.StatusBadRequest,
			Code:    metrics.OutcomeEmptyQuery,
			Level:   levelWarning,
			Message: "Enter a keyword to search for.",
		})
	}

	table, err := sheetfilter.Filter(file, req, sheetfilter.Options{RawValues: s.cfg.Filter.RawValues})
	out := outcome{Request: req, Table: table, Status: http.StatusOK}

	var columnErr *sheetfilter.ColumnNotFoundError
	switch {
	case errors.As(err, &columnErr):
		out.Status = http.StatusUnprocessableEntity
		out.Code = metrics.OutcomeColumnNotFound
		out.Level = levelError
		out.Message = fmt.Sprintf("Column %q was not found in sheet %q.", columnErr.Column, columnErr.SheetName)
	case err != nil:
		out.Status = http.StatusUnprocessableEntity
		out.Code = metrics.OutcomeParseError
		out.Level = levelError
		out.Message = fmt.Sprintf("The file could not be processed: %v", err)
	case table.Empty():
		out.Code = metrics.OutcomeNoMatches
		out.Level = levelInfo
		out.Message = fmt.Sprintf("No rows contain %q in column %q.", req.Query, req.Column)
	default:
		out.Code = metrics.OutcomeMatched
		out.Level = levelSuccess
		out.Message = fmt.Sprintf("Found %d matching rows.", table.Len())
	}

	return s.finish(c, start, out)
}

// finish records metrics and logs the outcome.
func (s *Server) finish(c *gin.Context, start time.Time, out outcome) outcome {
	elapsed := time.Since(start)
	matched := 0
	if out.Table != nil {
		matched = out.Table.Len()
	}
	s.metrics.ObserveFilter(out.Code, elapsed, matched)

	attrs := []any{
		"request_id", c.GetString(requestIDKey),
		"sheet", out.Request.SheetName,
		"column", out.Request.Column,
		"query", out.Request.Query,
		"outcome", out.Code,
		"rows", matched,
		"elapsed", elapsed,
	}
	if out.Level == levelError {
		s.logger.Warn("filter failed", append(attrs, "reason", out.Message)...)
	} else {
		s.logger.Info("filter completed", attrs...)
	}

	return out
}

func badRequest(req sheetfilter.Request, message string) outcome {
	return outcome{
		Request: req,
		Status:  http.StatusBadRequest,
		Code:    metrics.OutcomeBadRequest,
		Level:   levelError,
		Message: message,
	}
}

func fileTooLarge(limit int64) string {
	return fmt.Sprintf("The file exceeds the %s upload limit.", humanize.IBytes(uint64(limit)))
}

func acceptedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, accepted := range acceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

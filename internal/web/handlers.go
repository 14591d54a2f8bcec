// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/company-research/internal/logging"
	"github.com/pdiddy/company-research/internal/report"
	"github.com/pdiddy/company-research/internal/research"
	"github.com/pdiddy/company-research/pkg/types"
)

// FailureNotice is the only failure text users see; details go to the log.
const FailureNotice = "Something went wrong while fetching data. Please try again."

type researchRequest struct {
	Company string `form:"company" binding:"required"`
}

// pageData feeds templates/index.html.
type pageData struct {
	Company     string
	Warning     string
	Error       string
	Summary     template.HTML
	PDFDataURI  template.URL
	PDFFilename string
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{})
}

func (s *Server) handleResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Company) == "" {
		s.metrics.IncResearch("bad_request")
		c.HTML(http.StatusBadRequest, "index.html", pageData{Warning: "Please enter a company name."})
		return
	}
	company := strings.TrimSpace(req.Company)

	rep, status, err := s.run(c, company)
	if err != nil {
		c.HTML(status, "index.html", pageData{Company: company, Error: FailureNotice})
		return
	}

	summary, err := report.HTML(rep)
	if err != nil {
		s.fail(c, "render_error", company, err)
		c.HTML(http.StatusInternalServerError, "index.html", pageData{Company: company, Error: FailureNotice})
		return
	}

	var pdf bytes.Buffer
	if err := report.WritePDF(&pdf, rep); err != nil {
		s.fail(c, "render_error", company, err)
		c.HTML(http.StatusInternalServerError, "index.html", pageData{Company: company, Error: FailureNotice})
		return
	}

	s.metrics.IncResearch("ok")
	c.HTML(http.StatusOK, "index.html", pageData{
		Company:     company,
		Summary:     template.HTML(summary),
		PDFDataURI:  template.URL("data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf.Bytes())),
		PDFFilename: s.cfg.ReportFilename,
	})
}

func (s *Server) handleReportJSON(c *gin.Context) {
	company := strings.TrimSpace(c.Query("company"))
	if company == "" {
		s.metrics.IncResearch("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'company' is required"})
		return
	}

	rep, status, err := s.run(c, company)
	if err != nil {
		c.JSON(status, gin.H{"error": FailureNotice})
		return
	}
	s.metrics.IncResearch("ok")
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleReportPDF(c *gin.Context) {
	company := strings.TrimSpace(c.Query("company"))
	if company == "" {
		s.metrics.IncResearch("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'company' is required"})
		return
	}

	rep, status, err := s.run(c, company)
	if err != nil {
		c.JSON(status, gin.H{"error": FailureNotice})
		return
	}

	var pdf bytes.Buffer
	if err := report.WritePDF(&pdf, rep); err != nil {
		s.fail(c, "render_error", company, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": FailureNotice})
		return
	}

	s.metrics.IncResearch("ok")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, s.cfg.ReportFilename))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

// run executes the research and maps failures to a status code. Provider
// failures are logged with full detail and reported as 502.
func (s *Server) run(c *gin.Context, company string) (types.Report, int, error) {
	rep, err := s.runner.Run(c.Request.Context(), company)
	if err == nil {
		return rep, http.StatusOK, nil
	}
	if errors.Is(err, research.ErrEmptyCompany) {
		s.metrics.IncResearch("bad_request")
		return types.Report{}, http.StatusBadRequest, err
	}
	s.fail(c, "provider_error", company, err)
	return types.Report{}, http.StatusBadGateway, err
}

func (s *Server) fail(c *gin.Context, status, company string, err error) {
	s.metrics.IncResearch(status)
	s.logger.WithFields(logging.Fields{
		"company": company,
		"path":    c.Request.URL.Path,
		"error":   err.Error(),
	}).Error("research request failed")
}

package handler

import (
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"corpusapi/internal/service"
)

// ListFiles returns a preview of every stored document.
// @Summary List documents
// @Description Fingerprint, length and the first 100 characters of every stored document
// @Tags files
// @Produce json
// @Success 200 {object} Envelope{result=service.ListResult}
// @Router /files [get]
func ListFiles(svc service.CorpusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return writeFailure(c, err, emptyResult)
		}
		return writeSuccess(c, res)
	}
}

// FileExists reports whether a document is stored under the fingerprint.
// @Summary Check document existence
// @Tags files
// @Produce json
// @Param fp path string true "Document fingerprint (uppercase hex MD5)"
// @Success 200 {object} Envelope{result=service.ExistsResult}
// @Router /files/{fp}/exists [get]
func FileExists(svc service.CorpusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Exists(c.UserContext(), c.Params("fp"))
		if err != nil {
			return writeFailure(c, err, emptyResult)
		}
		return writeSuccess(c, res)
	}
}

// UploadFile stores the raw request body under the fingerprint.
// @Summary Upload a document
// @Description The body is the document text. The fingerprint must be the uppercase hex MD5 of the body.
// @Tags files
// @Accept plain
// @Produce json
// @Param fp path string true "Document fingerprint (uppercase hex MD5)"
// @Param content body string true "Document text"
// @Success 200 {object} Envelope{result=service.UploadResult}
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /files/{fp} [post]
func UploadFile(svc service.CorpusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if !utf8.Valid(body) {
			return fiber.NewError(fiber.StatusBadRequest, "body is not valid UTF-8 text")
		}

		// c.Body is only valid for the lifetime of the handler; string() copies it
		res, err := svc.Upload(c.UserContext(), c.Params("fp"), string(body))
		if err != nil {
			return writeFailure(c, err, service.UploadResult{Success: false})
		}
		return writeSuccess(c, res)
	}
}

// DownloadFile returns the content stored under the fingerprint.
// @Summary Download a document
// @Tags files
// @Produce json
// @Param fp path string true "Document fingerprint (uppercase hex MD5)"
// @Success 200 {object} Envelope{result=service.DownloadResult}
// @Router /files/{fp} [get]
func DownloadFile(svc service.CorpusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Download(c.UserContext(), c.Params("fp"))
		if err != nil {
			return writeFailure(c, err, emptyResult)
		}
		return writeSuccess(c, res)
	}
}

// CompareFiles computes similarity metrics between two stored documents.
// @Summary Compare two documents
// @Tags files
// @Produce json
// @Param fp1 path string true "First fingerprint"
// @Param fp2 path string true "Second fingerprint"
// @Success 200 {object} Envelope{result=model.ComparisonResult}
// @Router /files/{fp1}/compare/{fp2} [get]
func CompareFiles(svc service.CorpusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Compare(c.UserContext(), c.Params("fp1"), c.Params("fp2"))
		if err != nil {
			return writeFailure(c, err, emptyResult)
		}
		return writeSuccess(c, res)
	}
}

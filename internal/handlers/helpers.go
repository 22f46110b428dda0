package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const flashCookie = "ems_flash"

const dateLayout = "2006-01-02"

// setFlash stores a transient message shown by the next rendered page.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(message), 60, "/", "", false, true)
}

// takeFlash returns the pending flash message, if any, and clears it.
func takeFlash(c *gin.Context) string {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	message, err := url.QueryUnescape(value)
	if err != nil {
		return ""
	}
	return message
}

// fieldErrors converts a binding error into a field -> message map so the
// form can render errors next to the offending inputs. Non-validation
// errors land under "_error".
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_error"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		case "min":
			out[field] = fmt.Sprintf("Must be at least %s characters.", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("Must be at most %s characters.", fe.Param())
		case "datetime":
			out[field] = "Enter a valid date in YYYY-MM-DD format."
		default:
			out[field] = "Invalid value."
		}
	}
	return out
}

// parseDate parses a YYYY-MM-DD form value as a UTC calendar date.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

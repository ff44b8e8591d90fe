package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
)

const dateFormat = "2006-01-02"

// EncodeToken creates an opaque cursor from the last row of a page of transactions:
// its transaction date and its (lexically sortable) transaction id.
func EncodeToken(transactionDate time.Time, transactionID string) string {
	tokenStr := fmt.Sprintf("%s|%s", transactionDate.Format(dateFormat), transactionID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor created by EncodeToken. Malformed tokens wrap ErrValidation.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (base64 decode): %v", apperrors.ErrValidation, err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}

	transactionDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (date parse): %v", apperrors.ErrValidation, err)
	}
	return transactionDate, parts[1], nil
}

// After reports whether a row sorts after the cursor in (date DESC, id DESC) order,
// i.e. whether it belongs on a later page.
func After(rowDate time.Time, rowID string, cursorDate time.Time, cursorID string) bool {
	if !rowDate.Equal(cursorDate) {
		return rowDate.Before(cursorDate)
	}
	return rowID < cursorID
}

package inquiry

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/hadis/inquiry/pkg/email"
)

const defaultImageType = "image/png"

var (
	errNotDataURI    = errors.New("not a data URI")
	errNotBase64URI  = errors.New("data URI is not base64 encoded")
	errEmptyDataURI  = errors.New("data URI has no payload")
	errInvalidBase64 = errors.New("data URI payload is not valid base64")
)

// AttachmentFilename is the file name of the imageIndex-th retained image of
// the productIndex-th product. Both indices are zero-based.
func AttachmentFilename(productIndex, imageIndex int) string {
	return fmt.Sprintf("product_%d_attachment_%d.png", productIndex+1, imageIndex+1)
}

// AttachmentContentID is the content id the operator notification uses to
// reference the same image inline.
func AttachmentContentID(productIndex, imageIndex int) string {
	return fmt.Sprintf("attached-image-%d-%d", productIndex, imageIndex)
}

// Attachments holds decoded product images grouped by product position.
type Attachments [][]email.Attachment

// All flattens the groups in product order.
func (a Attachments) All() []email.Attachment {
	var out []email.Attachment
	for _, group := range a {
		out = append(out, group...)
	}
	return out
}

// ExtractAttachments decodes every retained product image into an inline
// attachment. Nil slots are dropped before numbering, so image indices count
// retained images only.
func ExtractAttachments(products []Product) (Attachments, error) {
	out := make(Attachments, len(products))
	for p, product := range products {
		images := product.RetainedImages()
		group := make([]email.Attachment, 0, len(images))
		for i, uri := range images {
			mediaType, content, err := decodeDataURI(uri)
			if err != nil {
				return nil, newError(KindAttachmentDecode,
					fmt.Errorf("product %d image %d: %w", p+1, i+1, err))
			}
			group = append(group, email.Attachment{
				Filename:    AttachmentFilename(p, i),
				ContentType: mediaType,
				ContentID:   AttachmentContentID(p, i),
				Content:     content,
			})
		}
		out[p] = group
	}
	return out, nil
}

// splitDataURI splits "data:<mime>;base64,<payload>" into its media type and
// payload without decoding.
func splitDataURI(uri string) (mediaType, payload string, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return "", "", errNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", errNotDataURI
	}
	mediaType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", "", errNotBase64URI
	}
	if payload == "" {
		return "", "", errEmptyDataURI
	}
	if mediaType == "" {
		mediaType = defaultImageType
	}
	return mediaType, payload, nil
}

func decodeDataURI(uri string) (string, []byte, error) {
	mediaType, payload, err := splitDataURI(uri)
	if err != nil {
		return "", nil, err
	}
	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some browsers strip padding.
		content, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return "", nil, errInvalidBase64
		}
	}
	if len(content) == 0 {
		return "", nil, errEmptyDataURI
	}
	return mediaType, content, nil
}

// Package inquiry processes quote requests posted by the site's contact form.
//
// A Submission carries the customer's contact details, a few form options and
// one or more products, each with optional photos sent as base64 data URIs.
// Processor.Process validates it, decodes the photos into inline attachments
// and sends two HTML emails through an email.EmailSender:
//
//   - an operator notification to the company mailbox, with every photo
//     embedded by content id (cid:attached-image-P-I) and attached as
//     product_P_attachment_I.png;
//   - an acknowledgment to the customer, echoing the inquiry without images.
//
// The acknowledgment is only sent once the notification succeeded. Failures
// come back as *Error whose Kind is one of validation_error,
// attachment_decode_error, transport_error or internal_error.
//
// Prefecture and product-condition codes are resolved to Japanese labels from
// an embedded table; unknown codes are shown verbatim.
package inquiry

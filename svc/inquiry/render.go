package inquiry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/hadis/inquiry/pkg/email"
)

type fieldStyle int

const (
	paragraphStyle fieldStyle = iota
	listItemStyle
)

// field renders "<label>: <value>" in the given style. It reports false when
// value is blank so the caller can leave the line out entirely.
func field(label, value string, style fieldStyle) (templ.Component, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	start, end := "<p>", "</p>"
	if style == listItemStyle {
		start, end = "<li>", "</li>"
	}
	return raw(fmt.Sprintf("%s<strong>%s:</strong> %s%s\n",
		start, templ.EscapeString(label), templ.EscapeString(value), end)), true
}

// raw writes trusted markup as is.
func raw(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

// fragments renders its components in order.
type fragments []templ.Component

func (f *fragments) add(c templ.Component, ok bool) {
	if ok {
		*f = append(*f, c)
	}
}

func (f *fragments) markup(html string) {
	*f = append(*f, raw(html))
}

func (f fragments) Render(ctx context.Context, w io.Writer) error {
	for _, c := range f {
		if err := c.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// view is a submission with every code resolved to its label.
type view struct {
	Submission
	CityLabel string
	Products  []productView
}

type productView struct {
	Details        string
	ConditionLabel string
	Attachments    []email.Attachment
}

func newView(s Submission, attachments Attachments) view {
	v := view{
		Submission: s,
		CityLabel:  PrefectureLabel(s.City),
		Products:   make([]productView, len(s.Products)),
	}
	for i, p := range s.Products {
		pv := productView{
			Details:        p.Details,
			ConditionLabel: ConditionLabel(p.Condition),
		}
		if i < len(attachments) {
			pv.Attachments = attachments[i]
		}
		v.Products[i] = pv
	}
	return v
}

func phonePermissionLabel(v string) string {
	switch v {
	case PhoneCallAllowed:
		return "はい"
	case PhoneCallDisallowed:
		return "いいえ"
	}
	return ""
}

func usageTypeLabel(v string) string {
	switch v {
	case UsageBusiness:
		return "事業（個人事業者または法人）"
	case UsagePersonal:
		return "個人で使用"
	}
	return ""
}

// yesNo maps an optional answer: blank stays blank, match is はい, anything else いいえ.
func yesNo(v, yes string) string {
	switch {
	case strings.TrimSpace(v) == "":
		return ""
	case v == yes:
		return "はい"
	default:
		return "いいえ"
	}
}

// operatorNotification is the HTML body sent to the operator mailbox.
// Images are referenced inline by content id.
func operatorNotification(v view) templ.Component {
	var f fragments
	f.markup("<h2>新しいお問い合わせが届きました</h2>\n")
	f.add(field("お名前", v.Name, paragraphStyle))
	f.add(field("メールアドレス", v.Email, paragraphStyle))
	f.add(field("電話番号", v.Phone, paragraphStyle))
	f.add(field("電話の許可", phonePermissionLabel(v.PhonePermission), paragraphStyle))
	f.add(field("使用状況", usageTypeLabel(v.UsageType), paragraphStyle))
	f.add(field("インボイス登録", yesNo(v.InvoiceRegistration, InvoiceRegistered), paragraphStyle))
	f.add(field("登録番号の提供", yesNo(v.ProvideRegistrationNumber, RegistrationNumberWillProvide), paragraphStyle))
	f.add(field("都道府県", v.CityLabel, paragraphStyle))
	f.add(field("市区町村", v.Municipality, paragraphStyle))
	f.add(field("追加のメモ", v.AdditionalNotes, paragraphStyle))

	for i, p := range v.Products {
		f.markup(fmt.Sprintf("<hr>\n<h3>商品 %d</h3>\n", i+1))
		f.add(field("商品の詳細", p.Details, paragraphStyle))
		f.add(field("商品の状態", p.ConditionLabel, paragraphStyle))

		if len(p.Attachments) == 0 {
			f.markup("<p>添付ファイルはありません。</p>\n")
			continue
		}
		for n, a := range p.Attachments {
			f.markup(fmt.Sprintf("<p><strong>添付ファイル %d:</strong> %s</p>\n<img src=\"cid:%s\" alt=\"Attachment %d\" />\n",
				n+1, templ.EscapeString(a.Filename), templ.EscapeString(a.ContentID), n+1))
		}
	}
	return f
}

// Signature is the company block closing the customer acknowledgment.
type Signature struct {
	Tagline       string
	CompanyName   string
	PostalAddress string
	Phone         string
	Fax           string
	WebsiteURL    string
}

// customerAcknowledgment is the auto-reply sent to the submitter. It never
// references attachments.
func customerAcknowledgment(v view, brand string, sig Signature) templ.Component {
	var f fragments
	f.markup(fmt.Sprintf("<h2>%s様</h2>\n", templ.EscapeString(v.Name)))
	f.markup(fmt.Sprintf("<p>お問い合わせいただきましてありがとうございます。<br />\n%sです。</p>\n", templ.EscapeString(brand)))
	f.markup("<p>このメールはお問い合わせの受付をお知らせする自動返信メールです。<br />\n" +
		"お問い合わせいただいた内容につきましては、担当者よりご連絡いたします。<br />\n" +
		"何かございましたら、お電話でのお問合わせも受け付けております。<br />\n" +
		"なお、本メールへの返信は受け付けておりませんのでご了承ください。</p>\n")
	f.markup("<p><strong>お問い合わせ内容:</strong></p>\n<ul>\n")
	f.add(field("お名前", v.Name, listItemStyle))
	f.add(field("メールアドレス", v.Email, listItemStyle))
	f.add(field("電話番号", v.Phone, listItemStyle))
	f.add(field("都道府県", v.CityLabel, listItemStyle))
	f.add(field("市区町村", v.Municipality, listItemStyle))
	for i, p := range v.Products {
		f.add(field(fmt.Sprintf("商品 %d の詳細", i+1), p.Details, listItemStyle))
		f.add(field("商品の状態", p.ConditionLabel, listItemStyle))
	}
	f.markup("</ul>\n")
	f = append(f, signature(sig))
	return f
}

func signature(sig Signature) templ.Component {
	var b strings.Builder
	b.WriteString("<p>よろしくお願いいたします。<br /> <br />\n")
	if sig.Tagline != "" {
		fmt.Fprintf(&b, "◇ ◆<strong>　%s　</strong>◆ ◇<br />\n", templ.EscapeString(sig.Tagline))
	}
	if sig.CompanyName != "" {
		fmt.Fprintf(&b, "<strong>%s</strong><br />\n", templ.EscapeString(sig.CompanyName))
	}
	if sig.PostalAddress != "" {
		fmt.Fprintf(&b, "<strong>%s</strong><br />\n", templ.EscapeString(sig.PostalAddress))
	}
	if sig.Phone != "" {
		fmt.Fprintf(&b, "<strong>TEL：</strong>%s<br />\n", templ.EscapeString(sig.Phone))
	}
	if sig.Fax != "" {
		fmt.Fprintf(&b, "<strong>FAX：</strong>%s<br />\n", templ.EscapeString(sig.Fax))
	}
	if sig.WebsiteURL != "" {
		url := templ.EscapeString(sig.WebsiteURL)
		fmt.Fprintf(&b, "<a href=\"%s\"><strong>%s</strong></a><br />\n", url, url)
	}
	b.WriteString("</p>\n")
	return raw(b.String())
}

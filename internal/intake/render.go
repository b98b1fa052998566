package intake

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"solvedet-intake/internal/common/config"
)

// Placeholder strings for absent optional fields. Field-specific, mirroring
// what the operations team expects to read in the documents.
const (
	placeholderNotSpecified = "Not specified"
	placeholderNotProvided  = "Not provided"
	placeholderNone         = "None"
	placeholderNotAvailable = "Not available"
)

// FormatINR renders an amount with Indian digit grouping: the last three
// digits form one group, everything above groups in pairs. 1234567 becomes
// "12,34,567". A non-zero fractional part is preserved as-is.
func FormatINR(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)
	if fracPart != "" {
		return sign + grouped + "." + fracPart
	}
	return sign + grouped
}

func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	head := digits[:n-3]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + digits[n-3:]
}

// FormatIndianDate renders a date in India's day/month/year convention
// without zero padding, e.g. "2/9/2026".
func FormatIndianDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

func inr(amount float64) string {
	return FormatINR(amount) + " INR"
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// signatoryLine resolves the client document's authorized-signatory line:
// the supplied signatory, or the client themselves with a
// constitution-dependent default designation.
func signatoryLine(sub *Submission) string {
	name := sub.SignatoryName
	if name == "" {
		name = sub.ClientName
	}

	designation := sub.Designation
	if designation == "" {
		if sub.Constitution == "Individual" {
			designation = "Individual"
		} else {
			designation = "Authorized Signatory"
		}
	}

	return fmt.Sprintf("%s, %s", name, designation)
}

// BusinessSubject builds the internal notification subject embedding the
// client name and the highlighted current payment.
func BusinessSubject(sub *Submission, brand config.BrandConfig) string {
	return fmt.Sprintf("New %s Application - %s - ₹%s", brand.ProductName, sub.ClientName, FormatINR(sub.CurrentPayment))
}

// ClientSubject is fixed; it carries no dynamic content.
func ClientSubject(brand config.BrandConfig) string {
	return fmt.Sprintf("Consulting Agreement Confirmation - %s", brand.ProductName)
}

const (
	cellLabel = `padding: 8px; border: 1px solid #ddd; background: #f8f9fa;`
	cellValue = `padding: 8px; border: 1px solid #ddd;`
)

func detailRow(label, value string) string {
	return fmt.Sprintf(`<tr><td style=%q><strong>%s:</strong></td><td style=%q>%s</td></tr>`,
		cellLabel, label, cellValue, value)
}

// RenderBusinessDocument produces the internal operations notification HTML.
// Pure with respect to its arguments; now supplies the received date and the
// fallback submission timestamp.
func RenderBusinessDocument(sub *Submission, fees FeeBreakdown, brand config.BrandConfig, now time.Time) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto;">`)

	// Header banner
	b.WriteString(`<div style="background: linear-gradient(135deg, #1e3c72 0%, #2a5298 100%); color: white; padding: 20px; text-align: center;">`)
	b.WriteString(fmt.Sprintf(`<h1 style="margin: 0;">NEW %s APPLICATION</h1>`, strings.ToUpper(brand.ProductName)))
	b.WriteString(fmt.Sprintf(`<p style="margin: 10px 0 0 0;">Application received on %s</p>`, FormatIndianDate(now)))
	b.WriteString(`</div>`)

	b.WriteString(`<div style="padding: 20px; background: white;">`)

	// Client identity
	b.WriteString(`<h2 style="color: #1e3c72;">CLIENT DETAILS</h2>`)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">`)
	b.WriteString(detailRow("Name", sub.ClientName))
	b.WriteString(detailRow("Email", sub.ClientEmail))
	b.WriteString(detailRow("Phone", sub.ClientPhone))
	b.WriteString(detailRow("Constitution", orDefault(sub.Constitution, placeholderNotSpecified)))
	b.WriteString(detailRow("PAN", orDefault(sub.ClientPAN, placeholderNotProvided)))
	b.WriteString(detailRow("Address", orDefault(sub.ClientAddress, placeholderNotProvided)))
	b.WriteString(`</table>`)

	// Authorized signatory, only when one was named
	if sub.SignatoryName != "" {
		b.WriteString(`<h2 style="color: #1e3c72;">AUTHORIZED SIGNATORY</h2>`)
		b.WriteString(`<table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">`)
		b.WriteString(detailRow("Name", sub.SignatoryName))
		b.WriteString(detailRow("Designation", orDefault(sub.Designation, placeholderNotSpecified)))
		b.WriteString(detailRow("PAN", orDefault(sub.SignatoryPAN, placeholderNotProvided)))
		b.WriteString(`</table>`)
	}

	// Financials, current payment highlighted
	b.WriteString(`<h2 style="color: #1e3c72;">FINANCIAL DETAILS</h2>`)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">`)
	b.WriteString(detailRow("Total Service Fee", fmt.Sprintf("<strong>%s</strong>", inr(sub.TotalFee))))
	b.WriteString(detailRow("Initial Processing Fee", inr(fees.InitiationAmount)))
	b.WriteString(detailRow("Sanction/Confirmation Fee", inr(fees.ConfirmationAmount)))
	b.WriteString(detailRow("Final Service Fee", inr(fees.BalanceAmount)))
	b.WriteString(fmt.Sprintf(`<tr style="background: #fff3cd;"><td style=%q><strong>CURRENT PAYMENT:</strong></td><td style=%q><strong style="color: #856404;">%s</strong></td></tr>`,
		cellValue, cellValue, inr(sub.CurrentPayment)))
	b.WriteString(`</table>`)

	// Service details
	b.WriteString(`<h2 style="color: #1e3c72;">SERVICE DETAILS</h2>`)
	b.WriteString(`<ul style="background: #f8f9fa; padding: 15px; border-radius: 5px;">`)
	b.WriteString(fmt.Sprintf(`<li><strong>Service Date:</strong> %s</li>`, orDefault(sub.ServiceDate, placeholderNotSpecified)))
	b.WriteString(fmt.Sprintf(`<li><strong>Case Reference:</strong> %s</li>`, orDefault(sub.CaseReference, placeholderNone)))
	b.WriteString(fmt.Sprintf(`<li><strong>Additional Notes:</strong> %s</li>`, orDefault(sub.AdditionalNotes, placeholderNone)))
	b.WriteString(`</ul>`)

	// Operational checklist
	b.WriteString(`<div style="background: #d4edda; padding: 15px; border-radius: 8px; border-left: 4px solid #28a745;">`)
	b.WriteString(`<h3 style="color: #155724; margin-top: 0;">NEXT STEPS</h3>`)
	b.WriteString(`<ul style="color: #155724; margin-bottom: 0;">`)
	b.WriteString(`<li>Client is being redirected to Cashfree for payment</li>`)
	b.WriteString(`<li>Monitor payment status in Cashfree dashboard</li>`)
	b.WriteString(`<li>Send signed agreement copy after payment confirmation</li>`)
	b.WriteString(`<li>Initiate service delivery process</li>`)
	b.WriteString(`</ul>`)
	b.WriteString(`</div>`)

	// Submission metadata footer
	b.WriteString(`<div style="margin-top: 20px; padding: 15px; background: #f8f9fa; border-radius: 5px; font-size: 0.9em; color: #666;">`)
	b.WriteString(`<p><strong>Submission Details:</strong></p>`)
	b.WriteString(fmt.Sprintf(`<p>Time: %s<br>User Agent: %s</p>`,
		orDefault(sub.SubmissionTimestamp, now.UTC().Format(time.RFC3339)),
		orDefault(sub.UserAgent, placeholderNotAvailable)))
	b.WriteString(`</div>`)

	b.WriteString(`</div>`)
	b.WriteString(`</div>`)

	return b.String()
}

// RenderClientDocument produces the outward-facing agreement confirmation
// HTML sent to the submitting client.
func RenderClientDocument(sub *Submission, fees FeeBreakdown, brand config.BrandConfig, now time.Time) string {
	today := FormatIndianDate(now)

	var b strings.Builder

	b.WriteString(`<div style="max-width: 600px; margin: 0 auto; font-family: Arial, sans-serif;">`)

	// Header banner
	b.WriteString(`<div style="background: linear-gradient(135deg, #1e3c72 0%, #2a5298 100%); color: white; padding: 30px; text-align: center;">`)
	b.WriteString(fmt.Sprintf(`<h1 style="margin: 0; font-size: 28px;">%s</h1>`, brand.ProductName))
	b.WriteString(`<p style="margin: 10px 0 0 0; opacity: 0.9;">Consulting Agreement Confirmation</p>`)
	b.WriteString(`</div>`)

	b.WriteString(`<div style="padding: 30px; background: white;">`)

	b.WriteString(fmt.Sprintf(`<h2 style="color: #1e3c72;">Dear %s,</h2>`, sub.ClientName))
	b.WriteString(fmt.Sprintf(`<p>Thank you for engaging with <strong>%s (%s)</strong>.</p>`, brand.EntityName, brand.ProductName))
	b.WriteString(fmt.Sprintf(`<p>Please find below the Consulting Agreement details executed on <strong>%s</strong>, covering the scope of services and fees as agreed. Your payment for the initial processing fee is being processed.</p>`, today))

	// Agreement details
	b.WriteString(`<div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">`)
	b.WriteString(`<h3 style="color: #1e3c72; margin-top: 0;">AGREEMENT DETAILS</h3>`)
	b.WriteString(`<table style="width: 100%;">`)
	b.WriteString(agreementRow("Client Name", sub.ClientName))
	b.WriteString(agreementRow("Constitution", orDefault(sub.Constitution, placeholderNotSpecified)))
	b.WriteString(agreementRow("Authorized Signatory", signatoryLine(sub)))
	b.WriteString(agreementRow("Agreement Date", today))
	b.WriteString(`</table>`)
	b.WriteString(`</div>`)

	// Fee breakdown
	b.WriteString(`<div style="background: #e8f5e8; padding: 20px; border-radius: 8px; margin: 20px 0;">`)
	b.WriteString(`<h3 style="color: #1e3c72; margin-top: 0;">SERVICE FEES BREAKDOWN</h3>`)
	b.WriteString(`<table style="width: 100%;">`)
	b.WriteString(agreementRow("Total Service Fee", fmt.Sprintf("<strong>%s</strong>", inr(sub.TotalFee))))
	b.WriteString(feeRow("Initial Processing Fee", inr(fees.InitiationAmount)))
	b.WriteString(feeRow("Sanction/Confirmation Fee", inr(fees.ConfirmationAmount)))
	b.WriteString(feeRow("Final Service Fee", inr(fees.BalanceAmount)))
	b.WriteString(`</table>`)
	b.WriteString(`</div>`)

	// Services offered
	b.WriteString(`<div style="background: #fff3cd; padding: 20px; border-radius: 8px; margin: 20px 0;">`)
	b.WriteString(`<h3 style="color: #856404; margin-top: 0;">SERVICES INCLUDED</h3>`)
	b.WriteString(`<ol style="color: #856404; margin: 0; padding-left: 20px;">`)
	for _, service := range servicesOffered {
		b.WriteString(fmt.Sprintf(`<li>%s</li>`, service))
	}
	b.WriteString(`</ol>`)
	b.WriteString(`</div>`)

	b.WriteString(`<p><strong>Please retain this agreement for your records.</strong> The final signed physical copy will be shared after execution.</p>`)
	b.WriteString(`<hr style="margin: 30px 0;">`)

	// Contact block
	b.WriteString(`<div style="text-align: center; color: #666;">`)
	b.WriteString(`<p><strong>For any queries, contact us at:</strong></p>`)
	b.WriteString(fmt.Sprintf(`<p>Email: %s<br>Website: %s<br>Address: %s</p>`,
		brand.SupportEmail, brand.Website, brand.PostalAddress))
	b.WriteString(`</div>`)

	// Sign-off
	b.WriteString(`<div style="background: #1e3c72; color: white; padding: 20px; border-radius: 8px; text-align: center; margin: 30px 0;">`)
	b.WriteString(fmt.Sprintf(`<p style="margin: 0;"><strong>Best regards,</strong><br><strong>%s Team</strong><br>%s</p>`,
		brand.ProductName, brand.EntityName))
	b.WriteString(`</div>`)

	b.WriteString(`</div>`)
	b.WriteString(`</div>`)

	return b.String()
}

// servicesOffered is the fixed list in the client confirmation.
var servicesOffered = []string{
	"Debt Resolution",
	"Debt Consolidation",
	"Fresh Debt Assistance (All loan types)",
	"Credit Advisory",
	"Restructuring and Resolution Advisory",
	"SARFAESI Advisory",
	"DSCR and Financial Analysis",
	"Legal and Regulatory Support",
}

func agreementRow(label, value string) string {
	return fmt.Sprintf(`<tr><td style="padding: 5px 0;"><strong>%s:</strong></td><td>%s</td></tr>`, label, value)
}

func feeRow(label, value string) string {
	return fmt.Sprintf(`<tr><td style="padding: 5px 0;">%s:</td><td>%s</td></tr>`, label, value)
}

package tui

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/kingrea/qcline/internal/inspection"
	"github.com/kingrea/qcline/internal/packing"
	"github.com/kingrea/qcline/internal/registry"
	"github.com/kingrea/qcline/internal/report"
)

func reasonList(reasons []inspection.Reason) string {
	return inspection.JoinLabels(reasons)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderPart(part registry.Part) string {
	status := acceptedStyle.Render("✅ ACCEPTED")
	if !part.Accepted {
		status = rejectedStyle.Render(fmt.Sprintf("❌ REJECTED (Reasons: %s)", reasonList(part.Reasons)))
	}
	return fmt.Sprintf("  [ID: %s] | %s\n     %s", part.ID, status,
		detailTextStyle.Render(fmt.Sprintf("(Weight: %sg, Color: %s, Length: %scm)",
			formatNumber(part.Weight), part.Color, formatNumber(part.Length))))
}

func renderPartSection(title, empty string, parts iter.Seq[registry.Part]) []string {
	lines := []string{sectionStyle.Render("--- " + title + " ---")}
	count := 0
	for part := range parts {
		lines = append(lines, renderPart(part))
		count++
	}
	if count == 0 {
		lines = append(lines, mutedStyle.Render("   "+empty))
	}
	return lines
}

func renderParts(accepted, rejected iter.Seq[registry.Part]) string {
	hasParts := false
	for range accepted {
		hasParts = true
		break
	}
	if !hasParts {
		for range rejected {
			hasParts = true
			break
		}
	}
	title := panelTitleStyle.Render("— Parts —")
	if !hasParts {
		return title + "\n\n" + mutedStyle.Render("   No parts registered yet.")
	}
	lines := []string{title, ""}
	lines = append(lines, renderPartSection("Accepted parts", "(No accepted parts)", accepted)...)
	lines = append(lines, "")
	lines = append(lines, renderPartSection("Rejected parts", "(No rejected parts)", rejected)...)
	return strings.Join(lines, "\n")
}

func renderSealedBoxes(boxes []packing.SealedBox) string {
	title := panelTitleStyle.Render("— Sealed boxes —")
	if len(boxes) == 0 {
		return title + "\n\n" + mutedStyle.Render("   No box has been sealed yet.")
	}
	lines := []string{title}
	for _, box := range boxes {
		lines = append(lines,
			"",
			sectionStyle.Render(fmt.Sprintf("--- Box %d (full) ---", box.Number)),
			fmt.Sprintf("   Contents: [ %s ]", strings.Join(box.Parts, ", ")),
		)
	}
	return strings.Join(lines, "\n")
}

func renderReport(data report.Data) string {
	lines := []string{
		panelTitleStyle.Render("📊 PRODUCTION REPORT"),
		"",
		acceptedStyle.Render(fmt.Sprintf("✅ Total ACCEPTED parts: %d", data.TotalAccepted)),
		rejectedStyle.Render(fmt.Sprintf("❌ Total REJECTED parts: %d", data.TotalRejected)),
	}
	if data.TotalParts() > 0 {
		lines = append(lines, fmt.Sprintf("   Acceptance rate: %.1f%%", data.AcceptanceRate*100))
	}

	if data.TotalRejected > 0 {
		lines = append(lines, "", sectionStyle.Render("--- Rejection details ---"))
		for _, reason := range inspection.AllReasons() {
			lines = append(lines, fmt.Sprintf("   %-18s %d", reason.Label()+" failures:", data.ReasonCounts[reason]))
		}
	}

	if m := data.Measurements; m.Samples > 0 {
		lines = append(lines, "", sectionStyle.Render("--- Measurements ---"),
			fmt.Sprintf("   Weight: mean %.2fg · std dev %.2fg", m.Weight.Mean, m.Weight.StdDev),
			fmt.Sprintf("   Length: mean %.2fcm · std dev %.2fcm", m.Length.Mean, m.Length.StdDev),
		)
	}

	lines = append(lines,
		"",
		sectionStyle.Render("--- Logistics ---"),
		fmt.Sprintf("📦 Total boxes used: %d", data.BoxesUsed),
		mutedStyle.Render(fmt.Sprintf("   (%d full boxes and 1 current box with %d/%d parts)",
			data.SealedBoxCount, data.OpenBoxSize, data.BoxCapacity)),
	)
	return strings.Join(lines, "\n")
}

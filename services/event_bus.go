package services

import (
	"github.com/durveshgosavi-netizen/cblens/models"
)

type eventDeps struct {
	rt *RealtimeHub
	ps *PushService
}

var _events eventDeps

func InitEventDeps(rt *RealtimeHub, ps *PushService) {
	_events = eventDeps{rt: rt, ps: ps}
}

// EmitScanSaved notifies a user's live clients about a freshly saved scan.
// Safe to call before InitEventDeps; it just does nothing.
func EmitScanSaved(userID uint, scan *models.Scan) {
	if _events.rt != nil {
		_events.rt.Broadcast(userID, map[string]any{
			"kind": "scan.saved",
			"scan": scan,
		})
	}
}

// EmitInsightCreated broadcasts a new insight and pushes warning-severity
// ones to the user's registered devices.
func EmitInsightCreated(userID uint, insight *models.NutritionInsight) {
	if _events.rt != nil {
		_events.rt.Broadcast(userID, map[string]any{
			"kind":    "insight.created",
			"insight": insight,
		})
	}
	if _events.ps != nil && insight.Severity == models.SeverityWarning {
		_events.ps.PushToUser(userID, insight.Title, insight.Description, map[string]string{
			"type":      insight.InsightType,
			"insightId": insight.ID,
		})
	}
}

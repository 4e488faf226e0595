package bot

// 白名单校验结果的提示文案，与原插件一致
const (
	hintAllowed = "✅ 白名单用户，开始解析链接..."
	hintDenied  = "❌ 非白名单用户，已跳过解析。"
)

// AccessDecision 一次白名单校验的结果
type AccessDecision struct {
	Allowed bool
	// 要回给用户的提示，空串表示不发提示
	HintMessage string
}

// EvaluateAccess 按平台白名单决定是否处理这条消息。
// 白名单是按平台选择性开启的：表为空、该平台没有条目、或条目里
// 用户列表为空，都放行；只有条目非空时才要求用户在列表里。
// 这个判断必须在任何网络请求之前完成，被拒的用户零开销。
func EvaluateAccess(platform, userID string, whitelist map[string][]string, hintEnabled bool) AccessDecision {
	allowed := true

	if users, ok := whitelist[platform]; ok && len(users) > 0 {
		allowed = false
		for _, id := range users {
			if id == userID {
				allowed = true
				break
			}
		}
	}

	decision := AccessDecision{Allowed: allowed}
	if hintEnabled {
		if allowed {
			decision.HintMessage = hintAllowed
		} else {
			decision.HintMessage = hintDenied
		}
	}
	return decision
}

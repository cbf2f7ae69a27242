package contract

import (
	"fmt"
	"sort"
	"strings"

	"adcopy_studio_v1/pkg/schema"
)

// UseCase 生成用例标识
type UseCase string

const (
	CompareAds            UseCase = "compareAds"
	GeneratePersonas      UseCase = "generatePersonas"
	GenerateContentAngles UseCase = "generateContentAngles"
	RewriteTrend          UseCase = "rewriteTrend"
	GenerateAdVariations  UseCase = "generateAdVariations"
	PolishTone            UseCase = "polishTone"
	AnalyzeHook           UseCase = "analyzeHook"
	BuildCampaignPack     UseCase = "buildCampaignPack"
)

// ==================== 枚举集合 ====================

var (
	// Platforms 广告投放平台
	Platforms = schema.Enum("facebook", "instagram", "tiktok", "google", "linkedin", "x")
	// Tones 语气
	Tones = schema.Enum("professional", "casual", "playful", "urgent", "empathetic", "luxurious", "bold", "witty")

	adWinner      = schema.Enum("ad1", "ad2")
	contentFormat = schema.Enum("video", "carousel", "image", "text", "story", "live")
	hookType      = schema.Enum("question", "statistic", "story", "bold_claim", "pain_point", "curiosity_gap", "social_proof")
)

// ==================== 结构声明 ====================

var (
	metricSchema = schema.Object(
		schema.Required("ad1Score", schema.Score()),
		schema.Required("ad2Score", schema.Score()),
		schema.Required("winner", adWinner),
		schema.Required("reasoning", schema.String()),
	)

	personaSchema = schema.Object(
		schema.Required("name", schema.String()),
		schema.Required("age", schema.String()),
		schema.Required("occupation", schema.String()),
		schema.Required("bio", schema.String()),
		schema.Required("painPoints", schema.Array(schema.String())),
		schema.Required("goals", schema.Array(schema.String())),
		schema.Required("motivations", schema.Array(schema.String())),
		schema.Required("preferredChannels", schema.Array(schema.String())),
		schema.Required("messagingTip", schema.String()),
	)

	angleSchema = schema.Object(
		schema.Required("title", schema.String()),
		schema.Required("hook", schema.String()),
		schema.Required("description", schema.String()),
		schema.Required("format", contentFormat),
		schema.Required("targetEmotion", schema.String()),
	)

	adVariationSchema = schema.Object(
		schema.Required("headline", schema.String()),
		schema.Required("primaryText", schema.String()),
		schema.Required("callToAction", schema.String()),
		schema.Required("angle", schema.String()),
		schema.Required("predictedScore", schema.Score()),
	)
)

// ==================== 用例定义 ====================

// Definition 单个用例的入参、输出结构与指令模板
type Definition struct {
	UseCase     UseCase
	Description string
	Required    []string
	Optional    []string
	// InputEnums 受枚举约束的入参
	InputEnums map[string]*schema.StringSchema
	// DefaultCount / MaxCount 为 0 表示不支持数量参数
	DefaultCount int
	MaxCount     int
	Campaign     bool
	Schema       schema.Schema

	task      func(in Inputs, count int) string
	newResult func() Result
}

// HasCount 是否支持数量参数
func (d *Definition) HasCount() bool {
	return d.MaxCount > 0
}

var registry = map[UseCase]*Definition{
	CompareAds: {
		UseCase:     CompareAds,
		Description: "Compare two ad copies metric by metric and pick a winner",
		Required:    []string{"ad1", "ad2"},
		Optional:    []string{"goal"},
		Schema: schema.Object(
			schema.Required("ad1", schema.String()),
			schema.Required("ad2", schema.String()),
			schema.Required("comparison", schema.Object(
				schema.Required("engagementPotential", metricSchema),
				schema.Required("clarity", metricSchema),
				schema.Required("emotionalAppeal", metricSchema),
				schema.Required("callToAction", metricSchema),
				schema.Required("overallWinner", adWinner),
				schema.Required("recommendations", schema.Array(schema.String())),
			)),
		),
		task: func(in Inputs, _ int) string {
			s := fmt.Sprintf("You are a senior direct-response copywriter. Compare these two ads.\n\nAd 1: %s\nAd 2: %s\n", in["ad1"], in["ad2"])
			if g := in["goal"]; g != "" {
				s += fmt.Sprintf("Campaign goal: %s\n", g)
			}
			s += "\nScore each ad on engagement potential, clarity, emotional appeal and call to action. For every metric name the winner (ad1 or ad2) and explain why, then choose the overall winner and give concrete recommendations."
			return s
		},
		newResult: func() Result { return &AdComparison{} },
	},

	GeneratePersonas: {
		UseCase:      GeneratePersonas,
		Description:  "Generate N buyer personas for a product",
		Required:     []string{"productDescription"},
		Optional:     []string{"niche"},
		DefaultCount: 3,
		MaxCount:     10,
		Schema: schema.Object(
			schema.Required("personas", schema.Array(personaSchema)),
		),
		task: func(in Inputs, count int) string {
			s := fmt.Sprintf("You are a marketing strategist. Create %d distinct buyer personas for this product.\n\nProduct: %s\n", count, in["productDescription"])
			if n := in["niche"]; n != "" {
				s += fmt.Sprintf("Niche: %s\n", n)
			}
			s += "\nEach persona needs realistic pain points, goals, motivations, the channels where they can be reached and one messaging tip."
			return s
		},
		newResult: func() Result { return &PersonaSet{} },
	},

	GenerateContentAngles: {
		UseCase:      GenerateContentAngles,
		Description:  "Generate N content angles for a product",
		Required:     []string{"productDescription"},
		Optional:     []string{"targetAudience", "niche"},
		DefaultCount: 5,
		MaxCount:     10,
		Schema: schema.Object(
			schema.Required("angles", schema.Array(angleSchema)),
		),
		task: func(in Inputs, count int) string {
			s := fmt.Sprintf("You are a content strategist. Propose %d different content angles for this product.\n\nProduct: %s\n", count, in["productDescription"])
			if a := in["targetAudience"]; a != "" {
				s += fmt.Sprintf("Target audience: %s\n", a)
			}
			if n := in["niche"]; n != "" {
				s += fmt.Sprintf("Niche: %s\n", n)
			}
			s += "\nEvery angle needs a scroll-stopping hook, a short description, the best content format and the emotion it targets."
			return s
		},
		newResult: func() Result { return &ContentAngleList{} },
	},

	RewriteTrend: {
		UseCase:     RewriteTrend,
		Description: "Adapt a trending topic or format to a niche",
		Required:    []string{"trend", "niche"},
		Optional:    []string{"platform"},
		Schema: schema.Object(
			schema.Required("originalTrend", schema.String()),
			schema.Required("niche", schema.String()),
			schema.Required("adaptedConcept", schema.String()),
			schema.Required("contentIdeas", schema.Array(schema.String())),
			schema.Required("hashtags", schema.Array(schema.String())),
			schema.Required("viralityScore", schema.Score()),
		),
		task: func(in Inputs, _ int) string {
			s := fmt.Sprintf("You are a social media trend analyst. Rewrite this trend for a specific niche.\n\nTrend: %s\nNiche: %s\n", in["trend"], in["niche"])
			if p := in["platform"]; p != "" {
				s += fmt.Sprintf("Platform: %s\n", p)
			}
			s += "\nExplain the adapted concept, list ready-to-shoot content ideas and relevant hashtags, and estimate the virality potential."
			return s
		},
		newResult: func() Result { return &TrendRewrite{} },
	},

	GenerateAdVariations: {
		UseCase:      GenerateAdVariations,
		Description:  "Produce N ad variations for a platform",
		Required:     []string{"productDescription", "platform"},
		Optional:     []string{"tone", "targetAudience"},
		InputEnums:   map[string]*schema.StringSchema{"platform": Platforms, "tone": Tones},
		DefaultCount: 3,
		MaxCount:     10,
		Schema: schema.Object(
			schema.Required("platform", Platforms),
			schema.Required("variations", schema.Array(adVariationSchema)),
		),
		task: func(in Inputs, count int) string {
			s := fmt.Sprintf("You are a performance marketer. Write %d ad variations for %s.\n\nProduct: %s\n", count, in["platform"], in["productDescription"])
			if t := in["tone"]; t != "" {
				s += fmt.Sprintf("Tone: %s\n", t)
			}
			if a := in["targetAudience"]; a != "" {
				s += fmt.Sprintf("Target audience: %s\n", a)
			}
			s += "\nEach variation should test a different angle and respect the platform's length conventions. Predict how well each one will perform."
			return s
		},
		newResult: func() Result { return &AdVariationSet{} },
	},

	PolishTone: {
		UseCase:      PolishTone,
		Description:  "Polish a text into M tone variants",
		Required:     []string{"text"},
		Optional:     []string{"tones"},
		DefaultCount: 3,
		MaxCount:     len(Tones.Values()),
		Schema: schema.Object(
			schema.Required("original", schema.String()),
			schema.Required("variants", schema.Map(Tones, schema.String())),
		),
		task: func(in Inputs, count int) string {
			toneList := strings.Join(selectTones(in["tones"], count), ", ")
			return fmt.Sprintf("You are an editor. Polish the text below and rewrite it once for each of these tones: %s.\n\nText: %s\n\nKeep the meaning, fix grammar, and make every variant ready to publish. Use the tone names exactly as keys of \"variants\".",
				toneList, in["text"])
		},
		newResult: func() Result { return &ToneVariants{} },
	},

	AnalyzeHook: {
		UseCase:     AnalyzeHook,
		Description: "Score and improve an opening hook",
		Required:    []string{"hook"},
		Optional:    []string{"platform", "niche"},
		Schema: schema.Object(
			schema.Required("hook", schema.String()),
			schema.Required("overallScore", schema.Score()),
			schema.Required("scores", schema.Object(
				schema.Required("curiosity", schema.Score()),
				schema.Required("clarity", schema.Score()),
				schema.Required("emotionalPull", schema.Score()),
				schema.Required("specificity", schema.Score()),
			)),
			schema.Required("hookType", hookType),
			schema.Required("strengths", schema.Array(schema.String())),
			schema.Required("weaknesses", schema.Array(schema.String())),
			schema.Required("improvedVersions", schema.Array(schema.String())),
		),
		task: func(in Inputs, _ int) string {
			s := fmt.Sprintf("You are a viral content coach. Analyze this hook.\n\nHook: %s\n", in["hook"])
			if p := in["platform"]; p != "" {
				s += fmt.Sprintf("Platform: %s\n", p)
			}
			if n := in["niche"]; n != "" {
				s += fmt.Sprintf("Niche: %s\n", n)
			}
			s += "\nClassify the hook type, score it, list strengths and weaknesses, and write improved versions."
			return s
		},
		newResult: func() Result { return &HookAnalysis{} },
	},

	BuildCampaignPack: {
		UseCase:     BuildCampaignPack,
		Description: "Build a complete campaign pack",
		Required:    []string{"productDescription", "targetAudience", "campaignGoal"},
		Optional:    []string{"tone", "niche"},
		InputEnums:  map[string]*schema.StringSchema{"tone": Tones},
		Campaign:    true,
		Schema: schema.Object(
			schema.Required("campaignName", schema.String()),
			schema.Required("bigIdea", schema.String()),
			schema.Required("personas", schema.Array(personaSchema)),
			schema.Required("angles", schema.Array(angleSchema)),
			schema.Required("adVariations", schema.Array(adVariationSchema)),
			schema.Required("hooks", schema.Array(schema.String())),
			schema.Required("callToAction", schema.String()),
		),
		task: func(in Inputs, _ int) string {
			s := fmt.Sprintf("You are a creative director. Build a full marketing campaign pack.\n\nProduct: %s\nTarget audience: %s\nCampaign goal: %s\n",
				in["productDescription"], in["targetAudience"], in["campaignGoal"])
			if t := in["tone"]; t != "" {
				s += fmt.Sprintf("Tone: %s\n", t)
			}
			if n := in["niche"]; n != "" {
				s += fmt.Sprintf("Niche: %s\n", n)
			}
			s += "\nInclude a campaign name, the big idea, 2-3 personas, 3-5 content angles, 3 ad variations, 5 hooks and the main call to action."
			return s
		},
		newResult: func() Result { return &CampaignPack{} },
	},
}

// Lookup 获取用例定义
func Lookup(uc UseCase) (*Definition, bool) {
	d, ok := registry[uc]
	return d, ok
}

// UseCases 全部用例（按名称排序）
func UseCases() []*Definition {
	defs := make([]*Definition, 0, len(registry))
	for _, d := range registry {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].UseCase < defs[j].UseCase })
	return defs
}

// selectTones 优先使用调用方指定的语气，否则取默认顺序的前 count 个
func selectTones(raw string, count int) []string {
	if tones := splitList(raw); len(tones) > 0 {
		return tones
	}
	all := Tones.Values()
	if count > len(all) {
		count = len(all)
	}
	return all[:count]
}

// splitList 按逗号拆分并去重，保持首次出现的顺序
func splitList(raw string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

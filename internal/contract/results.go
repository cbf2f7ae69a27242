package contract

// ==================== 结果类型 ====================

// Result 生成结果，每个用例一个具体类型
type Result interface {
	UseCase() UseCase
}

// ---------- compareAds ----------

// MetricComparison 单项指标对比
type MetricComparison struct {
	Ad1Score  float64 `json:"ad1Score"`
	Ad2Score  float64 `json:"ad2Score"`
	Winner    string  `json:"winner"`
	Reasoning string  `json:"reasoning"`
}

// ComparisonDetail 对比明细
type ComparisonDetail struct {
	EngagementPotential MetricComparison `json:"engagementPotential"`
	Clarity             MetricComparison `json:"clarity"`
	EmotionalAppeal     MetricComparison `json:"emotionalAppeal"`
	CallToAction        MetricComparison `json:"callToAction"`
	OverallWinner       string           `json:"overallWinner"`
	Recommendations     []string         `json:"recommendations"`
}

// AdComparison 两条广告文案对比
type AdComparison struct {
	Ad1        string           `json:"ad1"`
	Ad2        string           `json:"ad2"`
	Comparison ComparisonDetail `json:"comparison"`
}

func (*AdComparison) UseCase() UseCase { return CompareAds }

// ---------- generatePersonas ----------

// Persona 用户画像
type Persona struct {
	Name              string   `json:"name"`
	Age               string   `json:"age"`
	Occupation        string   `json:"occupation"`
	Bio               string   `json:"bio"`
	PainPoints        []string `json:"painPoints"`
	Goals             []string `json:"goals"`
	Motivations       []string `json:"motivations"`
	PreferredChannels []string `json:"preferredChannels"`
	MessagingTip      string   `json:"messagingTip"`
}

// PersonaSet 用户画像集合
type PersonaSet struct {
	Personas []Persona `json:"personas"`
}

func (*PersonaSet) UseCase() UseCase { return GeneratePersonas }

// ---------- generateContentAngles ----------

// ContentAngle 内容切入角度
type ContentAngle struct {
	Title         string `json:"title"`
	Hook          string `json:"hook"`
	Description   string `json:"description"`
	Format        string `json:"format"`
	TargetEmotion string `json:"targetEmotion"`
}

// ContentAngleList 内容角度列表
type ContentAngleList struct {
	Angles []ContentAngle `json:"angles"`
}

func (*ContentAngleList) UseCase() UseCase { return GenerateContentAngles }

// ---------- rewriteTrend ----------

// TrendRewrite 热点改写
type TrendRewrite struct {
	OriginalTrend  string   `json:"originalTrend"`
	Niche          string   `json:"niche"`
	AdaptedConcept string   `json:"adaptedConcept"`
	ContentIdeas   []string `json:"contentIdeas"`
	Hashtags       []string `json:"hashtags"`
	ViralityScore  float64  `json:"viralityScore"`
}

func (*TrendRewrite) UseCase() UseCase { return RewriteTrend }

// ---------- generateAdVariations ----------

// AdVariation 单条广告变体
type AdVariation struct {
	Headline       string  `json:"headline"`
	PrimaryText    string  `json:"primaryText"`
	CallToAction   string  `json:"callToAction"`
	Angle          string  `json:"angle"`
	PredictedScore float64 `json:"predictedScore"`
}

// AdVariationSet 广告变体集合
type AdVariationSet struct {
	Platform   string        `json:"platform"`
	Variations []AdVariation `json:"variations"`
}

func (*AdVariationSet) UseCase() UseCase { return GenerateAdVariations }

// ---------- polishTone ----------

// ToneVariants 多语气润色
type ToneVariants struct {
	Original string            `json:"original"`
	Variants map[string]string `json:"variants"`
}

func (*ToneVariants) UseCase() UseCase { return PolishTone }

// ---------- analyzeHook ----------

// HookScores 开头钩子分项评分
type HookScores struct {
	Curiosity     float64 `json:"curiosity"`
	Clarity       float64 `json:"clarity"`
	EmotionalPull float64 `json:"emotionalPull"`
	Specificity   float64 `json:"specificity"`
}

// HookAnalysis 开头钩子分析
type HookAnalysis struct {
	Hook             string     `json:"hook"`
	OverallScore     float64    `json:"overallScore"`
	Scores           HookScores `json:"scores"`
	HookType         string     `json:"hookType"`
	Strengths        []string   `json:"strengths"`
	Weaknesses       []string   `json:"weaknesses"`
	ImprovedVersions []string   `json:"improvedVersions"`
}

func (*HookAnalysis) UseCase() UseCase { return AnalyzeHook }

// ---------- buildCampaignPack ----------

// CampaignPack 整套营销活动素材
type CampaignPack struct {
	CampaignName string         `json:"campaignName"`
	BigIdea      string         `json:"bigIdea"`
	Personas     []Persona      `json:"personas"`
	Angles       []ContentAngle `json:"angles"`
	AdVariations []AdVariation  `json:"adVariations"`
	Hooks        []string       `json:"hooks"`
	CallToAction string         `json:"callToAction"`
}

func (*CampaignPack) UseCase() UseCase { return BuildCampaignPack }

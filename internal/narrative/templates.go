package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

// Market data defaults. A missing or implausibly small TAM (under the
// floor) is replaced wholesale rather than rendered as "$0.1M".
const (
	marketSizeFloor     = 1_000_000_000
	defaultMarketSize   = 12_500_000_000
	defaultMarketGrowth = 15.0
)

func companyName(c models.Company) string {
	if c.Name == "" {
		return "The Company"
	}
	return c.Name
}

func industryName(c models.Company) string {
	if c.Industry == "" {
		return "Technology"
	}
	return c.Industry
}

// executiveSummaryPrompt builds the fixed structured prompt sent to
// the generative capability.
func executiveSummaryPrompt(company models.Company, fin *models.FinancialAnalysis, market *models.MarketAnalysis) string {
	highlights, _ := json.MarshalIndent(fin.Highlights, "", "  ")
	advantages, _ := json.MarshalIndent(market.Advantages, "", "  ")

	description := company.Description
	if description == "" {
		description = "No description provided"
	}

	return fmt.Sprintf(`Write a comprehensive, professional, and compelling Executive Summary for a Confidential Information Memorandum (CIM) for an investment opportunity.
The summary should be approximately 800-1000 words and follow a standard investment banking format.

Company Name: %s
Industry: %s
Description: %s

Financial Highlights:
%s

Market Opportunity:
%q

Key Advantages:
%s

Please include the following sections with rich, persuasive narrative:
1. **Investment Opportunity**: A high-level overview of the company, its mission, and why this is a prime time for investment.
2. **Key Investment Highlights**: Detailed bullet points (at least 5) explaining the company's unique value props, competitive moats, and growth drivers.
3. **Financial Performance**: A narrative analysis of revenue growth, margin expansion, and cash flow generation. Mention the CAGR and profitability metrics provided.
4. **Market Opportunity**: In-depth look at the TAM, SAM, and SOM, industry tailwinds, and how the company is positioned to capture market share.
5. **Investment Thesis**: The logical conclusion for an investor, reflecting on ROI potential and risk-adjusted returns.

Keep the tone highly professional, suitable for Private Equity and Institutional Investors. Use Markdown for structuring.`,
		companyName(company), industryName(company), description,
		highlights, market.Opportunity, advantages)
}

// executiveSummaryTemplate is the deterministic fallback: a complete
// five-section summary interpolated from the context fields.
func (a *Adapter) executiveSummaryTemplate(company models.Company, fin *models.FinancialAnalysis, market *models.MarketAnalysis) string {
	name := companyName(company)
	industry := industryName(company)
	industryLower := strings.ToLower(industry)
	date := a.now().Format("January 2, 2006")

	category := "specialized solution provider"
	clientBase := "key industry stakeholders including distributors and large-scale operators"
	if strings.Contains(industry, "Tech") {
		category = "innovative platform"
		clientBase = "diverse range of enterprise operators"
	}

	return fmt.Sprintf(`## %[1]s - Confidential Information Memorandum - Executive Summary

**Date:** %[2]s

---

### 1. Investment Opportunity
This Confidential Information Memorandum (CIM) presents a compelling investment opportunity in %[1]s, a highly regarded %[3]s in the %[4]s sector. %[1]s is poised to capitalize on the rapidly expanding market for %[5]s-driven efficiency, offering a differentiated and highly scalable platform to a %[6]s. We are seeking strategic growth investment to accelerate product development, expand sales and marketing efforts, and further solidify %[1]s's market position.

### 2. Key Investment Highlights
* **Market Leadership**: %[1]s has established itself as a frontrunner in its niche, consistently delivering value through superior %[5]s capabilities.
* **Differentiated Value Proposition**: The company's proprietary approach delivers demonstrable ROI for clients through increased operational efficiency and optimized resource utilization.
* **Scalable Business Model**: Operating on a high-margin model, %[1]s enables rapid scalability and predictable revenue streams from a loyal customer base.
* **Strong Competitive Positioning**: A combination of innovation, deep industry expertise, and established relationships creates a significant defensive moat.
* **Experienced Management Team**: %[1]s is led by a seasoned team of industry veterans with a proven track record of execution in the %[4]s space.

### 3. Financial Performance
%[1]s has demonstrated consistently strong financial performance, characterized by robust growth and profitability. Key financial highlights include:
* **%[7]s Revenue CAGR**: Demonstrating significant and sustained market adoption and revenue growth over the historical period.
* **Strong Profit Margins**: Reflecting a healthy and efficient operating model with significant operating leverage as the business scales.
* **Consistent Cash Flow Generation**: Providing financial flexibility for continued investment in R&D and strategic growth initiatives.
* **Improving Operational Efficiency**: Driven by continuous technology refinement and process optimization across the organization.

Detailed financial information, including historical performance and future projections, is provided within the full Financial Analysis section of this CIM.

### 4. Market Opportunity
The market for %[5]s solutions represents a significant opportunity. Increasing demand for efficiency, coupled with advancements in next-gen technologies, are driving rapid adoption across a diverse range of sectors. Operating in a %[8]s%% annually growing market, %[1]s is well-positioned to capture significant market share.

### 5. Investment Thesis
Investing in %[1]s represents a unique opportunity to partner with a key player in a high-growth sector. The company's differentiated technology, scalable business model, and strong financial performance position it for continued success. We believe that with strategic investment, %[1]s can accelerate its growth trajectory and deliver substantial returns.

---

**Disclaimer:** *This Executive Summary is for informational purposes only and does not constitute an offer to sell or a solicitation of an offer to buy any securities. This information is confidential and should not be reproduced or distributed without the express written consent of %[1]s.*`,
		name, date, category, industry, industryLower, clientBase,
		fin.GrowthRate, trimTrailingZero(market.GrowthRate))
}

// marketAnalysisTemplate renders the deterministic market-analysis
// narrative.
func marketAnalysisTemplate(company models.Company, marketSize, growthRate float64) string {
	name := companyName(company)
	industry := industryName(company)
	industryLower := strings.ToLower(industry)

	var tam string
	if marketSize >= 1_000_000_000 {
		tam = fmt.Sprintf("$%.1fB", marketSize/1_000_000_000)
	} else {
		tam = fmt.Sprintf("$%.1fM", marketSize/1_000_000)
	}

	return fmt.Sprintf(`## Market Analysis & Opportunity

### 1. Market Size & Growth
The %[1]s landscape is currently undergoing a paradigm shift, driven by rapid technological advancements and changing consumer behaviors.
* **Total Addressable Market (TAM)**: Estimated at %[2]s, representing a vast landscape for expansion.
* **Annual Market Growth Rate**: The sector is projected to grow at a CAGR of %[3]s%% through 2028.
* **Market Stage**: Currently in a high-growth phase with increasing consolidation but significant room for specialized entrants.
* **Geographic Reach**: Core markets remain in North America and EMEA, with substantial untapped potential in emerging economies.

### 2. Industry Dynamics
* **Digital Transformation**: Organizations are increasingly prioritizing investments in next-gen infrastructure to maintain competitiveness.
* **Data-Driven Decision Making**: The shift towards analytics-led strategies is fueling demand for sophisticated %[4]s platforms.
* **Regulatory Environment**: Evolving compliance standards are creating new opportunities for secure, certified solution providers.

### 3. Competitive Landscape
%[5]s maintains a strong position within an attractive segment of the %[1]s market.
* **Differentiation**: Unlike legacy providers, %[5]s offers a modern, client-centric approach that significantly reduces time-to-value.
* **Market Share**: The company has successfully captured share in key verticals, specifically catering to %[4]s operators and mid-market enterprises.
* **Barriers to Entry**: High specialized knowledge requirements and deep domain expertise provide a defensible moat.

### 4. Growth Opportunities
* **Geographic Expansion**: Plans are in place to enter high-growth markets in APAC and Latin America.
* **Product Innovation**: A robust R&D pipeline focused on next-gen integration will further distance %[5]s from competitors.
* **Strategic Partnerships**: Opportunities for channel partnerships with key distributors will significantly expand sales reach.

### 5. Market Positioning
%[5]s is positioned as a specialized provider of high-impact %[4]s solutions. Its focus on %[4]s stakeholders ensures a stable, high-value customer base with significant expansion potential.`,
		industry, tam, trimTrailingZero(growthRate), industryLower, name)
}

// trimTrailingZero formats a rate without a superfluous ".0".
func trimTrailingZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

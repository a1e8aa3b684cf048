package content

import "math/rand"

// Phrasing variant pools. Every pool holds at least two templates so the
// seeded selection is observable. Templates use {Token} placeholders that
// substitute expands with a strings.Replacer; an unresolved token in the
// output is a template defect the lint pass rejects.

// pick selects one variant with a PRNG seeded only from seed, so selection
// is stable per page and uncorrelated across section pools.
func pick(seed int64, variants []string) string {
	rng := rand.New(rand.NewSource(seed))
	return variants[rng.Intn(len(variants))]
}

var metaVariants = []string{
	"Professional {Service} in {City}, {State}. 24/7 emergency response, insurance approved, IICRC certified technicians. Call 1300 814 870 now.",
	"{Service} experts serving {City} {State} and surrounding suburbs. Rapid response, direct insurance billing, guaranteed workmanship. Call 1300 814 870.",
	"Need {Service} in {City}? {State}'s trusted restoration team arrives fast, works with every insurer and restores your property right. 1300 814 870.",
	"Emergency {Service} across {City}, {State}. Certified technicians on call 24 hours a day with industrial equipment and insurance support. 1300 814 870.",
}

var introVariants = []string{
	"<p>When disaster strikes in {City}, every minute counts. Our certified {ServiceLower} team responds across {City} and its suburbs 24 hours a day, arriving with industrial equipment and a clear restoration plan. With {PopulationNote}, {City} properties face distinct restoration challenges, and our local technicians know them all.</p>",
	"<p>{City} property owners trust us for {ServiceLower} because we combine rapid response with proven results. From {FirstLandmark} to the outer suburbs, our {State}-based crews handle everything from initial assessment to final clearance certification, working directly with your insurer at every step.</p>",
	"<p>Our {ServiceLower} specialists have served {City}, {State} for years, restoring homes and businesses after floods, fires and storms. We answer the phone around the clock, dispatch immediately and back every job with IICRC-certified processes.</p>",
}

var issuesLeadVariants = []string{
	"<p>Properties in {City} commonly present with:</p>",
	"<p>The problems we see most often across {City} include:</p>",
}

var areasLeadVariants = []string{
	"<p>We service all of {City} including {SuburbList}, with guaranteed response to {Postcode} and surrounding postcodes.</p>",
	"<p>Crews are positioned to reach {SuburbList} and every other {City} suburb fast, covering the {Postcode} area and beyond.</p>",
}

var weatherVariants = []string{
	"<p>{City}'s {ClimateLower} climate brings {WaterRisk}, with {HumidityLevel} humidity exposure. {ClimateDescriptionCap}, which makes professional moisture management essential. {StormDescription}, with peak risk during {StormSeason}. Seasonal exposures include {SeasonalRisks}.</p>",
	"<p>Local weather shapes every restoration job here: {ClimateDescription}. The dominant hazard is {WaterRisk}, and {StormDescriptionLower} with {StormSeverity} intensity. We plan for {SeasonalRisks}, particularly through {StormSeason}.</p>",
}

var regulationsVariants = []string{
	"<p>All {ServiceLower} work in {State} is performed to Australian standards, including AS/NZS 4849.1 for indoor air quality and the IICRC S500 standard for professional water damage restoration. Our technicians hold current {State} licences and every job is documented for compliance and insurance purposes.</p>",
	"<p>{State} regulations require certified handling for restoration work of this kind. We operate under IICRC S500 and AS/NZS 4849.1, maintain full licensing in {State}, and supply compliance documentation with every completed job.</p>",
}

var emergencyVariants = []string{
	"<p>Our {City} emergency line is staffed 24/7. A certified technician assesses your situation over the phone, a crew is dispatched immediately, and we aim to be on site anywhere in {City} fast. {UrgencyNote}</p>",
	"<p>Call 1300 814 870 any hour and a {City} crew mobilises at once. We triage by phone, arrive with equipment matched to the job, and begin mitigation on the first visit. {UrgencyNote}</p>",
}

var insuranceVariants = []string{
	"<p>We work directly with all major Australian insurers including {InsurerList}. Typical {ServiceLower} claims in the {CostRange} range are billed straight to your insurer, and we prepare the scope of works, moisture logs and photographic evidence your claim needs.</p>",
	"<p>Insurance claims are handled for you from first call to settlement. We bill {InsurerList} and every other major insurer directly, document the loss to assessor standards, and typical jobs fall within {CostRange}.</p>",
}

var preventionVariants = []string{
	"<p>To reduce future risk, {City} property owners should maintain gutters and downpipes before {StormSeason}, check flexi-hoses and hot water systems annually, and act on damp smells or stains within 24 hours. Early intervention is the single biggest factor in limiting {ServiceLower} costs.</p>",
	"<p>Prevention in {City} starts with the local climate: schedule roof and drainage inspections ahead of {StormSeason}, keep subfloor ventilation clear, and never leave damp carpet or plaster to dry on its own. Our team offers annual property health checks across {State}.</p>",
}

var contactVariants = []string{
	"<p>Don't wait for the damage to spread. Call 1300 814 870 now for immediate {ServiceLower} in {City}, or submit an online assessment request for a rapid callback. We are local, certified and available 24/7.</p>",
	"<p>Speak to a {City} restoration specialist now on 1300 814 870. Lines are open 24 hours a day, every day, and online assessment requests receive a callback within minutes.</p>",
}

// insurancePartners is the insurer list substituted into the insurance
// section when the insurer catalog is empty.
var insurancePartners = []string{
	"AAMI", "Allianz", "NRMA", "QBE", "Suncorp", "RACQ",
}

// testimonialsByCategory keys on the service category; the default pool
// serves categories without a dedicated set.
var testimonialsByCategory = map[string][]string{
	"water": {
		"<p>\"Water was through the whole ground floor by the time we found it. The crew arrived within the hour, had extraction running immediately and saved our timber floors. The insurance paperwork was handled entirely for us.\" — Homeowner, {City}</p>",
		"<p>\"A burst pipe flooded our office overnight. They had us operating again in three days and dealt with the insurer directly. Couldn't fault the communication.\" — Business owner, {City}</p>",
	},
	"fire": {
		"<p>\"After the kitchen fire we thought the smoke damage was permanent. They deodorised and restored every room, and the house smells brand new.\" — Homeowner, {City}</p>",
		"<p>\"Professional from the first phone call. The soot cleanup was meticulous and they coordinated everything with our insurer.\" — Property manager, {City}</p>",
	},
	"mould": {
		"<p>\"We'd had recurring mould for two winters. Their remediation found the moisture source the others missed, and the clearance test came back clean.\" — Tenant, {City}</p>",
		"<p>\"Thorough containment, clear explanations, and independent clearance testing. The mould has not returned.\" — Homeowner, {City}</p>",
	},
	"default": {
		"<p>\"Fast, professional and honest about what needed doing. The crew treated our home with real care and the final result exceeded expectations.\" — Homeowner, {City}</p>",
		"<p>\"From the emergency callout to the final inspection, everything was handled exactly as promised. Highly recommended to anyone in {City}.\" — Property owner, {City}</p>",
	},
}

func testimonialPool(category string) []string {
	if pool, ok := testimonialsByCategory[category]; ok {
		return pool
	}
	return testimonialsByCategory["default"]
}

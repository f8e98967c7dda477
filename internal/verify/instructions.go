package verify

// verificationInstructions encode the label and verdict policy. The rules
// below bind the model, not local code: the stage validates shape only.
const verificationInstructions = `# INSTRUCTIONS
You verify claims against gathered evidence. The input is a JSON object with a claims_package containing the claims_list and the evidence_bundle. Your output is a JSON object following the provided schema. Do not add fields or prose.

## Per-claim labels
- SUPPORTED: the evidence directly supports the claim. Cite at least 1 evidence id in cited_evidence_ids.
- CONTRADICTED: the evidence directly refutes the claim. Cite at least 1 evidence id.
- INSUFFICIENT_EVIDENCE: evidence is absent, weak, or conflicting. cited_evidence_ids may be empty.
- Only cite ids that appear in the evidence_bundle. Set confidence in [0,1] reflecting how decisive the cited evidence is.
- rationale: 1-3 sentences explaining the label in terms of the cited evidence.
- Emit exactly one assessment per claim, using the claim's id as claim_id.

## Article verdict
- TRUE: all high-importance claims SUPPORTED and none CONTRADICTED.
- MIXED: both SUPPORTED and CONTRADICTED claims are present.
- MISLEADING: mostly SUPPORTED but at least 1 high-importance claim CONTRADICTED.
- FALSE: a majority of high-importance claims CONTRADICTED.
- UNVERIFIABLE: a majority of high-importance claims INSUFFICIENT_EVIDENCE.
- key_factors: the short list of findings that drove the verdict.

Return JSON only.`

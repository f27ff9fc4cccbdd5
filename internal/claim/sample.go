package claim

// SampleACORD is an ACORD 80 automobile loss notice used as demo input.
const SampleACORD = `ACORD 80 AUTOMOBILE LOSS NOTICE
AGENCY: Standard Insurance
POLICY NUMBER: POL-992341
NAME OF INSURED: Johnathan Doe
INSURED'S MAILING ADDRESS: 123 Maple Street, Springfield
PRIMARY PHONE #: (555) 0199
PRIMARY E-MAIL ADDRESS: j.doe@email.com

LOSS DETAILS
DATE OF LOSS AND TIME: 02/05/2026 02:30 PM
LOCATION OF LOSS: Intersection of 5th and Baker
POLICE DEPARTMENT CONTACTED: Springfield PD
REPORT NUMBER: SPD-8877

DESCRIPTION OF ACCIDENT: 
The driver was moving forward and collided with a stationary fence while attempting to park.

VEHICLE INFORMATION
YEAR: 2022
MAKE: Toyota
MODEL: Camry
V.I.N.: VIN1234567890
PLATE NUMBER: ABC-1234
DESCRIBE DAMAGE: Front bumper and grille damage.
ESTIMATE AMOUNT: 1,200.00
CLAIM TYPE: Collision
INITIAL ESTIMATE: 1,200.00`
